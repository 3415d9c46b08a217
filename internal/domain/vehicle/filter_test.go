package vehicle

import "testing"

func fleet() []*Vehicle {
	mk := func(id, make, model string, year int, fuel FuelType, body BodyType, status Status) *Vehicle {
		return &Vehicle{
			ID: id, Make: make, Model: model, Year: year,
			Fuel: fuel, BodyType: body, Status: status,
			ReferenceNumber: "REF-" + id, ChassisNumber: "CHS-" + id,
		}
	}
	return []*Vehicle{
		mk("1", "Nissan", "GT-R", 2017, FuelPetrol, BodyCoupe, StatusAvailable),
		mk("2", "Toyota", "Prado", 2019, FuelDiesel, BodySUV, StatusAvailable),
		mk("3", "Toyota", "Aqua", 2018, FuelHybrid, BodyHatchback, StatusSold),
		mk("4", "Nissan", "Note", 2016, FuelPetrol, BodyHatchback, StatusIncoming),
	}
}

func ids(vs []*Vehicle) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	got := ListFilters{Search: "gt-r"}.Apply(fleet())
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected vehicle 1, got %v", ids(got))
	}

	got = ListFilters{Search: "TOYOTA"}.Apply(fleet())
	if len(got) != 2 {
		t.Fatalf("expected 2 Toyotas, got %v", ids(got))
	}
}

func TestSearchMatchesYear(t *testing.T) {
	got := ListFilters{Search: "2019"}.Apply(fleet())
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected vehicle 2, got %v", ids(got))
	}
}

func TestFiltersAreANDed(t *testing.T) {
	got := ListFilters{Make: "nissan", Fuel: FuelPetrol, Status: StatusAvailable}.Apply(fleet())
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only vehicle 1, got %v", ids(got))
	}
}

// Applying filters one at a time in any order must give the same result as
// applying them at once.
func TestFilterOrderIrrelevant(t *testing.T) {
	all := ListFilters{Make: "toyota", Fuel: FuelDiesel, Status: StatusAvailable}

	atOnce := all.Apply(fleet())

	stepwise := fleet()
	stepwise = ListFilters{Status: StatusAvailable}.Apply(stepwise)
	stepwise = ListFilters{Fuel: FuelDiesel}.Apply(stepwise)
	stepwise = ListFilters{Make: "toyota"}.Apply(stepwise)

	reversed := fleet()
	reversed = ListFilters{Make: "toyota"}.Apply(reversed)
	reversed = ListFilters{Fuel: FuelDiesel}.Apply(reversed)
	reversed = ListFilters{Status: StatusAvailable}.Apply(reversed)

	if len(atOnce) != len(stepwise) || len(atOnce) != len(reversed) {
		t.Fatalf("filter order changed the result: %v vs %v vs %v",
			ids(atOnce), ids(stepwise), ids(reversed))
	}
	for i := range atOnce {
		if atOnce[i].ID != stepwise[i].ID || atOnce[i].ID != reversed[i].ID {
			t.Fatalf("filter order changed the result: %v vs %v vs %v",
				ids(atOnce), ids(stepwise), ids(reversed))
		}
	}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	got := ListFilters{}.Apply(fleet())
	if len(got) != len(fleet()) {
		t.Fatalf("expected all vehicles, got %v", ids(got))
	}
}

func TestMatchesAdminSearchesIdentifiers(t *testing.T) {
	v := fleet()[1]

	if !(ListFilters{Search: "ref-2"}).MatchesAdmin(v) {
		t.Error("expected reference number match")
	}
	if !(ListFilters{Search: "chs-2"}).MatchesAdmin(v) {
		t.Error("expected chassis number match")
	}
	// Public matching never looks at identifiers.
	if (ListFilters{Search: "ref-2"}).Matches(v) {
		t.Error("public search should not match reference numbers")
	}
}
