package services

import (
	"fmt"
	"testing"

	"github.com/traininghub/quiz_platform/models"
)

func TestBuildAdminStatsAggregates(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Sato", EmployeeCode: "1001", StoreCode: "S1"},
		{ID: "u2", Name: "Tanaka", EmployeeCode: "1002", StoreCode: "S1"},
		{ID: "u3", Name: "Idle", EmployeeCode: "1003", StoreCode: "S2"},
	}
	stores := []models.Store{{Code: "S1", Name: "Main Branch"}}

	h1 := models.NewLearningHistory()
	h1.Append(models.QuizRecord{CategoryID: "c1", CategoryName: "Safety", Score: 80, CorrectAnswers: 8, TotalQuestions: 10, CompletedAt: "2026-08-01T10:00:00Z"})
	h1.Append(models.QuizRecord{CategoryID: "c1", CategoryName: "Safety", Score: 60, CorrectAnswers: 6, TotalQuestions: 10, CompletedAt: "2026-08-02T10:00:00Z"})
	h2 := models.NewLearningHistory()
	h2.Append(models.QuizRecord{CategoryID: "c2", CategoryName: "Service", Score: 100, CorrectAnswers: 5, TotalQuestions: 5, CompletedAt: "2026-08-03T10:00:00Z"})

	history := map[string]*models.LearningHistory{
		"u1": h1,
		"u2": h2,
		"u3": models.NewLearningHistory(), // played nothing
	}

	stats := BuildAdminStats(users, history, stores)

	if stats.Summary.TotalUsers != 3 || stats.Summary.ActiveUsers != 2 {
		t.Errorf("summary users = %+v", stats.Summary)
	}
	if stats.Summary.TotalPlayCount != 3 {
		t.Errorf("play count = %d, want 3", stats.Summary.TotalPlayCount)
	}
	if stats.Summary.AverageScore != 80 { // (80+60+100)/3
		t.Errorf("average = %d, want 80", stats.Summary.AverageScore)
	}
	if stats.Summary.TotalCorrectAnswers != 19 || stats.Summary.TotalQuestions != 25 {
		t.Errorf("answer totals = %+v", stats.Summary)
	}

	safety := stats.CategoryStats["c1"]
	if safety == nil || safety.PlayCount != 2 || safety.AverageScore != 70 {
		t.Errorf("category rollup = %+v", safety)
	}

	store := stats.StoreStats["S1"]
	if store == nil || store.Name != "Main Branch" {
		t.Fatalf("store rollup = %+v", store)
	}
	if store.ActiveUsersCount != 2 || store.PlayCount != 3 {
		t.Errorf("store counts = %+v", store)
	}
	if store.AverageScore != 80 {
		t.Errorf("store average = %d, want 80", store.AverageScore)
	}

	if len(stats.RecentActivity) != 3 {
		t.Fatalf("activity length = %d", len(stats.RecentActivity))
	}
	if stats.RecentActivity[0].CompletedAt != "2026-08-03T10:00:00Z" {
		t.Error("activity must be newest first")
	}
	if stats.RecentActivity[0].UserName != "Tanaka" || stats.RecentActivity[0].StoreName != "Main Branch" {
		t.Errorf("activity item = %+v", stats.RecentActivity[0])
	}
}

func TestBuildAdminStatsUnknowns(t *testing.T) {
	h := models.NewLearningHistory()
	h.Append(models.QuizRecord{CategoryID: "c1", Score: 50, CompletedAt: "2026-08-01T10:00:00Z"})

	// history for a user id nobody knows, and no store master at all
	stats := BuildAdminStats(nil, map[string]*models.LearningHistory{"ghost": h}, nil)

	if stats.Summary.ActiveUsers != 1 {
		t.Errorf("active users = %d", stats.Summary.ActiveUsers)
	}
	item := stats.RecentActivity[0]
	if item.UserName != "Unknown user" || item.StoreName != "Unknown store" {
		t.Errorf("fallback labels missing: %+v", item)
	}
}

func TestBuildAdminStatsActivityLimit(t *testing.T) {
	h := models.NewLearningHistory()
	for i := 0; i < 30; i++ {
		h.Append(models.QuizRecord{
			CategoryID:  "c1",
			Score:       i,
			CompletedAt: fmt.Sprintf("2026-08-01T10:%02d:00Z", i),
		})
	}
	stats := BuildAdminStats(nil, map[string]*models.LearningHistory{"u": h}, nil)

	if len(stats.RecentActivity) != 20 {
		t.Fatalf("activity length = %d, want 20", len(stats.RecentActivity))
	}
	if stats.RecentActivity[0].Score != 29 {
		t.Error("limit must keep the newest records")
	}
}

func TestBuildAdminStatsEmpty(t *testing.T) {
	stats := BuildAdminStats(nil, nil, nil)
	if stats.Summary.TotalPlayCount != 0 || stats.Summary.AverageScore != 0 {
		t.Errorf("empty summary = %+v", stats.Summary)
	}
	if stats.RecentActivity == nil || stats.CategoryStats == nil {
		t.Error("empty stats must still have non-nil collections")
	}
}
