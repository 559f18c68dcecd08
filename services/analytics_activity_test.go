package services

import (
	"testing"
	"time"

	"drivefund/models"
)

func ts(minute int) models.Timestamp {
	return models.NewTimestamp(time.Date(2025, 1, 1, 0, minute, 0, 0, time.UTC))
}

func TestBuildPlatformActivityTitles(t *testing.T) {
	feed := BuildPlatformActivity(
		[]models.RecentUser{{ID: "u1", Name: "Ada", Role: "investor", CreatedAt: ts(1)}},
		[]models.RecentDeposit{{ID: "d1", UserName: "Bola", Method: "bank_transfer", AmountNgn: 2500, CreatedAt: ts(3)}},
		[]models.RecentInvestment{{ID: "i1", UserName: "Chidi", Label: "KEKE pool (Open)", AmountNgn: 9000, CreatedAt: ts(2)}},
	)

	if len(feed) != 3 {
		t.Fatalf("feed length = %d, want 3", len(feed))
	}

	deposit, investment, user := feed[0], feed[1], feed[2]

	if deposit.Kind != models.ActivityDeposit || deposit.Title != "Bola funded wallet" || deposit.Subtitle != "Bank Transfer deposit" {
		t.Errorf("deposit item = %+v", deposit)
	}
	if deposit.AmountNgn == nil || *deposit.AmountNgn != 2500 {
		t.Errorf("deposit amount = %v", deposit.AmountNgn)
	}
	if investment.Kind != models.ActivityInvestment || investment.Title != "Chidi invested" || investment.Subtitle != "KEKE pool (Open)" {
		t.Errorf("investment item = %+v", investment)
	}
	if user.Kind != models.ActivityUserJoined || user.Title != "Ada joined" || user.Subtitle != "Investor account" || user.AmountNgn != nil {
		t.Errorf("user item = %+v", user)
	}
	if user.ID != "user-u1" || deposit.ID != "deposit-d1" || investment.ID != "investment-i1" {
		t.Errorf("ids = %q %q %q", user.ID, deposit.ID, investment.ID)
	}
}

func TestBuildPlatformActivityCapsAndOrders(t *testing.T) {
	var (
		users       []models.RecentUser
		deposits    []models.RecentDeposit
		investments []models.RecentInvestment
	)
	for i := 0; i < 10; i++ {
		users = append(users, models.RecentUser{ID: "u", Name: "u", CreatedAt: ts(3 * i)})
		deposits = append(deposits, models.RecentDeposit{ID: "d", UserName: "d", CreatedAt: ts(3*i + 1)})
		investments = append(investments, models.RecentInvestment{ID: "i", UserName: "i", CreatedAt: ts(3*i + 2)})
	}

	feed := BuildPlatformActivity(users, deposits, investments)
	if len(feed) != 12 {
		t.Fatalf("feed length = %d, want 12", len(feed))
	}
	if !feed[0].Timestamp.Equal(ts(29).Time) {
		t.Fatalf("newest = %v, want minute 29", feed[0].Timestamp)
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Timestamp.After(feed[i-1].Timestamp.Time) {
			t.Fatalf("feed not descending at %d", i)
		}
	}
}

func TestBuildPlatformActivityTiesKeepListOrder(t *testing.T) {
	feed := BuildPlatformActivity(
		[]models.RecentUser{{ID: "u", Name: "u", CreatedAt: ts(5)}},
		[]models.RecentDeposit{{ID: "d", UserName: "d", CreatedAt: ts(5)}},
		[]models.RecentInvestment{{ID: "i", UserName: "i", CreatedAt: ts(5)}},
	)

	want := []models.ActivityKind{models.ActivityUserJoined, models.ActivityDeposit, models.ActivityInvestment}
	for i, kind := range want {
		if feed[i].Kind != kind {
			t.Fatalf("feed[%d].Kind = %q, want %q", i, feed[i].Kind, kind)
		}
	}
}

func TestBuildPlatformActivityEmpty(t *testing.T) {
	feed := BuildPlatformActivity(nil, nil, nil)
	if feed == nil || len(feed) != 0 {
		t.Fatalf("feed = %#v, want empty non-nil slice", feed)
	}
}
