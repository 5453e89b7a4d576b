package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAchievementUnlock_Idempotent(t *testing.T) {
	a := Achievement{Title: "First Step", Requirement: FirstHabitRequirement{}}

	if !a.Unlock(testNow) {
		t.Fatal("Expected first unlock to change state")
	}
	if a.Unlock(testNow.Add(time.Hour)) {
		t.Error("Expected second unlock to be a no-op")
	}
	if a.UnlockedDate == nil || !a.UnlockedDate.Equal(testNow) {
		t.Errorf("Expected unlocked date to stay at first unlock, got %v", a.UnlockedDate)
	}
}

func TestAchievementJSON_PreservesRequirement(t *testing.T) {
	in := []Achievement{
		{ID: "a", Title: "Week Warrior", Requirement: StreakRequirement{Days: 7}, Rarity: RarityRare},
		{ID: "b", Title: "Health Guardian", Requirement: CategoryMasterRequirement{Category: CategoryHealth}, Rarity: RarityRare},
		{ID: "c", Title: "Perfect Week", Requirement: WeekPerfectRequirement{}, Rarity: RarityEpic},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out []Achievement
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("Expected %d achievements, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Requirement != in[i].Requirement {
			t.Errorf("achievement %s: requirement = %#v, want %#v", in[i].ID, out[i].Requirement, in[i].Requirement)
		}
	}
}

func TestAchievementJSON_RejectsUnknownKind(t *testing.T) {
	var a Achievement
	err := json.Unmarshal([]byte(`{"id":"x","title":"Bogus","requirement":{"kind":"teleport"}}`), &a)
	if err == nil {
		t.Error("Expected error for unknown requirement kind")
	}
}

func TestRequirementDescribe(t *testing.T) {
	tests := []struct {
		req  Requirement
		want string
	}{
		{StreakRequirement{Days: 30}, "Maintain a 30-day streak"},
		{HabitsCountRequirement{Count: 3}, "Track 3 different habits"},
		{CategoryMasterRequirement{Category: CategoryFitness}, "Master the Fitness category"},
		{AllHabitsOneDayRequirement{}, "Complete all habits in one day"},
	}

	for _, tt := range tests {
		if got := tt.req.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
