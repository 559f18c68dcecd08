package services

import (
	"sort"

	"drivefund/models"
	"drivefund/utils"
)

const activityFeedLimit = 12

// BuildPlatformActivity merges the normalized recent lists into one feed,
// newest first, capped at twelve items. Items with equal timestamps keep the
// users, deposits, investments order.
func BuildPlatformActivity(users []models.RecentUser, deposits []models.RecentDeposit, investments []models.RecentInvestment) []models.ActivityItem {
	feed := make([]models.ActivityItem, 0, len(users)+len(deposits)+len(investments))

	for _, u := range users {
		feed = append(feed, userJoinedActivity(u))
	}
	for _, d := range deposits {
		feed = append(feed, depositActivity(d))
	}
	for _, inv := range investments {
		feed = append(feed, investmentActivity(inv))
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.Normalized().After(feed[j].Timestamp.Normalized())
	})

	if len(feed) > activityFeedLimit {
		feed = feed[:activityFeedLimit]
	}
	return feed
}

func userJoinedActivity(u models.RecentUser) models.ActivityItem {
	subtitle := "New account"
	if u.Role != "" {
		subtitle = utils.TitleCase(u.Role) + " account"
	}

	return models.ActivityItem{
		ID:        "user-" + u.ID,
		Kind:      models.ActivityUserJoined,
		Title:     u.Name + " joined",
		Subtitle:  subtitle,
		Timestamp: u.CreatedAt,
	}
}

func depositActivity(d models.RecentDeposit) models.ActivityItem {
	amount := d.AmountNgn
	return models.ActivityItem{
		ID:        "deposit-" + d.ID,
		Kind:      models.ActivityDeposit,
		Title:     d.UserName + " funded wallet",
		Subtitle:  utils.TitleCase(d.Method) + " deposit",
		AmountNgn: &amount,
		Timestamp: d.CreatedAt,
	}
}

func investmentActivity(inv models.RecentInvestment) models.ActivityItem {
	amount := inv.AmountNgn
	return models.ActivityItem{
		ID:        "investment-" + inv.ID,
		Kind:      models.ActivityInvestment,
		Title:     inv.UserName + " invested",
		Subtitle:  inv.Label,
		AmountNgn: &amount,
		Timestamp: inv.CreatedAt,
	}
}
