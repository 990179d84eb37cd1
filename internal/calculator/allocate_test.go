package calculator

import (
	"reflect"
	"testing"

	"github.com/tabkeep/tabkeep/internal/models"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		purchase models.Purchase
		want     map[string]int64
	}{
		{
			// Worked example: A's item share = round(599/2)+350 = 650,
			// B's = 300. Fee 101 splits 51/50 with the extra cent going
			// to the first-seen participant. The grand total (1051) is
			// one cent over items+fee (1050): item rounding drifts,
			// fee splitting doesn't.
			name: "snacks scenario with odd item and odd fee",
			purchase: models.Purchase{
				Title: "Snacks",
				Items: []models.Item{
					{PriceCents: 599, ParticipantIDs: []string{"A", "B"}},
					{PriceCents: 350, ParticipantIDs: []string{"A"}},
				},
				FeeCents: 101,
			},
			want: map[string]int64{"A": 701, "B": 350},
		},
		{
			name: "even split no fee",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 1000, ParticipantIDs: []string{"A", "B"}},
				},
			},
			want: map[string]int64{"A": 500, "B": 500},
		},
		{
			name: "no participants anywhere yields empty map",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 1000},
					{PriceCents: 250},
				},
				FeeCents: 300,
			},
			want: map[string]int64{},
		},
		{
			name: "item without participants is unallocated cost",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 1000, ParticipantIDs: []string{"A"}},
					{PriceCents: 9999},
				},
			},
			want: map[string]int64{"A": 1000},
		},
		{
			name: "duplicate participant ids collapse to one share",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 900, ParticipantIDs: []string{"A", "A", "B"}},
				},
			},
			want: map[string]int64{"A": 450, "B": 450},
		},
		{
			name: "fee remainder goes to earliest-seen participants",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 0, ParticipantIDs: []string{"C"}},
					{PriceCents: 0, ParticipantIDs: []string{"A", "B"}},
				},
				FeeCents: 101,
			},
			// Base 33 each, two leftover cents to C then A.
			want: map[string]int64{"C": 34, "A": 34, "B": 33},
		},
		{
			name: "fee only among item participants",
			purchase: models.Purchase{
				Items: []models.Item{
					{PriceCents: 500, ParticipantIDs: []string{"A"}},
					{PriceCents: 700},
				},
				FeeCents: 200,
			},
			want: map[string]int64{"A": 700},
		},
		{
			name:     "empty purchase",
			purchase: models.Purchase{},
			want:     map[string]int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.purchase)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Allocate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	purchase := models.Purchase{
		Items: []models.Item{
			{PriceCents: 599, ParticipantIDs: []string{"A", "B", "C"}},
			{PriceCents: 1234, ParticipantIDs: []string{"B", "D"}},
			{PriceCents: 77, ParticipantIDs: []string{"D", "A"}},
		},
		FeeCents: 503,
	}

	first := Allocate(purchase)
	for i := 0; i < 50; i++ {
		if got := Allocate(purchase); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	items := []models.Item{
		{PriceCents: 900, ParticipantIDs: []string{"A", "A", "B"}},
	}
	purchase := models.Purchase{Items: items, FeeCents: 10}

	Allocate(purchase)

	if want := []string{"A", "A", "B"}; !reflect.DeepEqual(items[0].ParticipantIDs, want) {
		t.Errorf("input participant ids mutated: %v", items[0].ParticipantIDs)
	}
}

// Fee splitting must conserve every cent for any fee and any
// participant-set size.
func TestFeeConservation(t *testing.T) {
	for count := 1; count <= 9; count++ {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = string(rune('A' + i))
		}
		for fee := int64(0); fee <= 250; fee++ {
			purchase := models.Purchase{
				Items:    []models.Item{{PriceCents: 0, ParticipantIDs: ids}},
				FeeCents: fee,
			}
			var sum int64
			for _, cents := range Allocate(purchase) {
				sum += cents
			}
			if sum != fee {
				t.Fatalf("fee %d among %d participants: shares sum to %d", fee, count, sum)
			}
		}
	}
}

// Item shares round independently, so their sum may drift from the item
// price, but never by more than count-1 cents in either direction.
func TestItemShareBoundedDrift(t *testing.T) {
	for count := 1; count <= 7; count++ {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = string(rune('A' + i))
		}
		for price := int64(0); price <= 500; price++ {
			purchase := models.Purchase{
				Items: []models.Item{{PriceCents: price, ParticipantIDs: ids}},
			}
			var sum int64
			for _, cents := range Allocate(purchase) {
				sum += cents
			}
			drift := sum - price
			if drift < 0 {
				drift = -drift
			}
			if drift > int64(count-1) {
				t.Fatalf("price %d among %d participants: drift %d exceeds %d",
					price, count, sum-price, count-1)
			}
		}
	}
}

func TestParticipantSet(t *testing.T) {
	purchase := models.Purchase{
		Items: []models.Item{
			{ParticipantIDs: []string{"B", "A"}},
			{ParticipantIDs: []string{"A", "C", "B"}},
			{ParticipantIDs: []string{"D"}},
		},
	}

	got := ParticipantSet(purchase)
	want := []string{"B", "A", "C", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParticipantSet() = %v, want %v", got, want)
	}
}
