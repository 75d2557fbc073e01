package domain

import "testing"

func TestComputeGrade(t *testing.T) {
	tests := []struct {
		name     string
		moisture float64
		impurity float64
		want     Grade
	}{
		{"dry and clean", 12.0, 1.0, Grade1},
		{"at grade 1 limits", 14.0, 2.0, Grade1},
		{"moisture pushes to grade 2", 15.0, 1.0, Grade2},
		{"impurity pushes to grade 2", 13.0, 4.0, Grade2},
		{"at grade 2 limits", 16.0, 5.0, Grade2},
		{"wet", 17.5, 1.0, Grade3},
		{"dirty", 12.0, 8.0, Grade3},
		{"both over", 20.0, 10.0, Grade3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeGrade(tt.moisture, tt.impurity); got != tt.want {
				t.Fatalf("ComputeGrade(%v, %v) = %d, want %d", tt.moisture, tt.impurity, got, tt.want)
			}
		})
	}
}

func TestCommodity_Valid(t *testing.T) {
	for _, c := range []Commodity{CommodityWheat, CommodityBarley, CommodityCorn, CommoditySunflower, CommodityFlax, CommodityPeas} {
		if !c.Valid() {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	if Commodity("rice").Valid() {
		t.Fatal("expected rice to be invalid")
	}
	if Commodity("").Valid() {
		t.Fatal("expected empty commodity to be invalid")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleProducer, RoleAggregator, RoleCarrier, RoleDocAgent} {
		if !r.Valid() {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Fatal("expected admin to be invalid")
	}
}
