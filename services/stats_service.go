package services

import (
	"math"
	"sort"

	"github.com/traininghub/quiz_platform/models"
)

// recentActivityLimit caps the activity feed in the admin dashboard.
const recentActivityLimit = 20

type StatsSummary struct {
	TotalUsers          int `json:"totalUsers"`
	ActiveUsers         int `json:"activeUsers"`
	TotalPlayCount      int `json:"totalPlayCount"`
	AverageScore        int `json:"averageScore"`
	TotalCorrectAnswers int `json:"totalCorrectAnswers"`
	TotalQuestions      int `json:"totalQuestions"`
}

type CategoryStats struct {
	Name           string `json:"name"`
	PlayCount      int    `json:"playCount"`
	TotalScore     int    `json:"totalScore"`
	TotalCorrect   int    `json:"totalCorrect"`
	TotalQuestions int    `json:"totalQuestions"`
	AverageScore   int    `json:"averageScore"`
}

type StoreStats struct {
	Name             string `json:"name"`
	ActiveUsersCount int    `json:"activeUsersCount"`
	PlayCount        int    `json:"playCount"`
	TotalScore       int    `json:"totalScore"`
	AverageScore     int    `json:"averageScore"`
}

type ActivityItem struct {
	models.QuizRecord
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	EmployeeCode string `json:"employeeCode"`
	StoreName    string `json:"storeName"`
}

type AdminStats struct {
	Summary        StatsSummary              `json:"summary"`
	CategoryStats  map[string]*CategoryStats `json:"categoryStats"`
	StoreStats     map[string]*StoreStats    `json:"storeStats"`
	RecentActivity []ActivityItem            `json:"recentActivity"`
}

// BuildAdminStats aggregates every user's learning history into the
// dashboard view: global summary, per-category and per-store rollups
// and the most recent activity.
func BuildAdminStats(users []models.User, history map[string]*models.LearningHistory, stores []models.Store) *AdminStats {
	storeNames := map[string]string{}
	for _, st := range stores {
		storeNames[st.Code] = st.Name
	}
	usersByID := map[string]models.User{}
	for _, u := range users {
		usersByID[u.ID] = u
	}

	stats := &AdminStats{
		Summary:        StatsSummary{TotalUsers: len(users)},
		CategoryStats:  map[string]*CategoryStats{},
		StoreStats:     map[string]*StoreStats{},
		RecentActivity: []ActivityItem{},
	}

	activeStoreUsers := map[string]map[string]bool{}
	var allItems []ActivityItem

	for userID, h := range history {
		if h == nil || len(h.QuizHistory) == 0 {
			continue
		}
		stats.Summary.ActiveUsers++
		stats.Summary.TotalPlayCount += len(h.QuizHistory)

		user, known := usersByID[userID]
		storeCode := "unknown"
		if known {
			storeCode = user.StoreCode
		}
		storeName, ok := storeNames[storeCode]
		if !ok {
			storeName = "Unknown store"
		}

		if stats.StoreStats[storeCode] == nil {
			stats.StoreStats[storeCode] = &StoreStats{Name: storeName}
			activeStoreUsers[storeCode] = map[string]bool{}
		}
		activeStoreUsers[storeCode][userID] = true

		for _, rec := range h.QuizHistory {
			item := ActivityItem{QuizRecord: rec, UserID: userID, StoreName: storeName}
			if known {
				item.UserName = user.Name
				item.EmployeeCode = user.EmployeeCode
			} else {
				item.UserName = "Unknown user"
			}
			allItems = append(allItems, item)

			cat := stats.CategoryStats[rec.CategoryID]
			if cat == nil {
				cat = &CategoryStats{Name: rec.CategoryName}
				stats.CategoryStats[rec.CategoryID] = cat
			}
			cat.PlayCount++
			cat.TotalScore += rec.Score
			cat.TotalCorrect += rec.CorrectAnswers
			cat.TotalQuestions += rec.TotalQuestions

			st := stats.StoreStats[storeCode]
			st.PlayCount++
			st.TotalScore += rec.Score
		}
	}

	if stats.Summary.TotalPlayCount > 0 {
		var sumScore int
		for _, item := range allItems {
			sumScore += item.Score
			stats.Summary.TotalCorrectAnswers += item.CorrectAnswers
			stats.Summary.TotalQuestions += item.TotalQuestions
		}
		stats.Summary.AverageScore = roundDiv(sumScore, stats.Summary.TotalPlayCount)
	}

	for _, cat := range stats.CategoryStats {
		cat.AverageScore = roundDiv(cat.TotalScore, cat.PlayCount)
	}
	for code, st := range stats.StoreStats {
		st.ActiveUsersCount = len(activeStoreUsers[code])
		if st.PlayCount > 0 {
			st.AverageScore = roundDiv(st.TotalScore, st.PlayCount)
		}
	}

	sort.Slice(allItems, func(i, j int) bool {
		return allItems[i].CompletedAt > allItems[j].CompletedAt
	})
	if len(allItems) > recentActivityLimit {
		allItems = allItems[:recentActivityLimit]
	}
	stats.RecentActivity = allItems

	return stats
}

func roundDiv(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
