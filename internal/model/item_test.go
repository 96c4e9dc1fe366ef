package model

import "testing"

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("listed category %q rejected", c)
		}
	}
	for _, c := range []string{"", "electronics", "Cars", "WATCHES"} {
		if ValidCategory(c) {
			t.Errorf("category %q accepted", c)
		}
	}
}

func TestValidCondition(t *testing.T) {
	for _, c := range Conditions {
		if !ValidCondition(c) {
			t.Errorf("listed condition %q rejected", c)
		}
	}
	for _, c := range []string{"", "new", "Mint"} {
		if ValidCondition(c) {
			t.Errorf("condition %q accepted", c)
		}
	}
}
