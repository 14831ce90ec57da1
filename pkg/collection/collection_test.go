package collection_test

import (
	"testing"

	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/collection"
)

func TestFilterAndReject(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	even := collection.Filter(nums, func(n int) bool { return n%2 == 0 })
	odd := collection.Reject(nums, func(n int) bool { return n%2 == 0 })

	if len(even) != 2 || len(odd) != 3 {
		t.Errorf("Filter/Reject: got %v and %v", even, odd)
	}
}

func TestFirstAndIndexOf(t *testing.T) {
	words := []string{"pending", "accepted", "preparing"}

	got, ok := collection.First(words, func(s string) bool { return s == "accepted" })
	if !ok || got != "accepted" {
		t.Errorf("First: got %q, ok=%v", got, ok)
	}

	if idx := collection.IndexOf(words, func(s string) bool { return s == "preparing" }); idx != 2 {
		t.Errorf("IndexOf: got %d", idx)
	}
	if idx := collection.IndexOf(words, func(s string) bool { return s == "missing" }); idx != -1 {
		t.Errorf("IndexOf missing: got %d", idx)
	}
}

func TestCountBy(t *testing.T) {
	words := []string{"pending", "pending", "accepted"}
	counts := collection.CountBy(words, func(s string) string { return s })

	if counts["pending"] != 2 || counts["accepted"] != 1 {
		t.Errorf("CountBy: got %v", counts)
	}
}

func TestSortByIsStableForPurpose(t *testing.T) {
	nums := []int{3, 1, 2}
	collection.SortBy(nums, func(a, b int) bool { return a > b })

	if nums[0] != 3 || nums[2] != 1 {
		t.Errorf("SortBy descending: got %v", nums)
	}
}

func TestSum(t *testing.T) {
	type line struct {
		qty   int
		price float64
	}
	lines := []line{{2, 10}, {1, 5}}

	total := collection.Sum(lines, func(l line) float64 { return float64(l.qty) * l.price })
	if total != 25 {
		t.Errorf("Sum: got %v", total)
	}
}

func TestKeyBy(t *testing.T) {
	type order struct{ id string }
	orders := []order{{"a"}, {"b"}}

	byID := collection.KeyBy(orders, func(o order) string { return o.id })
	if len(byID) != 2 || byID["a"].id != "a" {
		t.Errorf("KeyBy: got %v", byID)
	}
}
