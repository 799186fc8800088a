package main

import (
	"fmt"
	"strings"

	"streakbot/internal/models"
	"streakbot/internal/services"

	wr "github.com/mroth/weightedrand/v2"
)

const (
	textStart = `📆 Welcome to the check-in bot!

Send /checkin once a day to earn points and build your streak.
Chatting earns points too, and sometimes hits the jackpot.

Commands:
/checkin - daily check-in
/me - your profile
/rank - leaderboards
/stats - today's numbers
/month - this month's numbers`

	textAlreadyCheckedIn = "You already checked in today. Come back tomorrow!"
	textNotRegistered    = "You haven't checked in yet. Send /checkin to join!"
)

// jackpot announcements, weighted so the louder ones stay rare.
// every template takes (name, multiplier, score) in that order.
var jackpotChooser, _ = wr.NewChooser(
	wr.NewChoice("🎰 JACKPOT! %s hit a x%d multiplier and won %d points!", 5),
	wr.NewChoice("💥 %s just smashed a x%d jackpot for %d points!", 3),
	wr.NewChoice("🍀 Lucky day! %s rolled x%d and takes %d points!", 3),
	wr.NewChoice("👑 Unbelievable! %s strikes a x%d jackpot worth %d points!", 1),
)

func jackpotText(name string, multiplier, score int) string {
	return fmt.Sprintf(jackpotChooser.Pick(), name, multiplier, score)
}

func displayName(username string, userID int64) string {
	if username != "" {
		return "@" + username
	}
	return fmt.Sprintf("user %d", userID)
}

func checkInText(result *services.CheckInResult) string {
	var b strings.Builder
	if result.IsNewUser {
		b.WriteString("🎉 Welcome aboard! Your first check-in is in.\n")
	} else {
		b.WriteString("✅ Checked in!\n")
	}
	fmt.Fprintf(&b, "Points earned: %d\n", result.Score)
	fmt.Fprintf(&b, "Streak: %d day(s)\n", result.ConsecutiveDays)
	fmt.Fprintf(&b, "Total score: %d", result.User.TotalScore)
	return b.String()
}

func profileText(info *services.UserInfoResult) string {
	user := info.User

	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s\n", displayName(user.Username, user.ID))
	fmt.Fprintf(&b, "Total score: %d\n", user.TotalScore)
	fmt.Fprintf(&b, "Messages: %d (avg %.1f pts)\n", user.ChatCount, user.AverageScorePerChat())
	fmt.Fprintf(&b, "Check-ins: %d, current streak: %d\n", user.TotalAttendance, user.ConsecutiveDays)
	fmt.Fprintf(&b, "Jackpots: %d", user.JackpotCount)
	if user.MaxJackpot > 0 {
		fmt.Fprintf(&b, " (best: %d pts)", user.MaxJackpot)
	}

	if len(info.RecentAttendances) > 0 {
		b.WriteString("\n\nRecent check-ins:")
		for _, a := range info.RecentAttendances {
			fmt.Fprintf(&b, "\n• %s: +%d", a.Date.Format("Jan 02"), a.Score)
		}
	}

	return b.String()
}

var rankingTitles = map[models.RankingType]string{
	models.RankingByScore:           "🏆 Top by score",
	models.RankingByChatCount:       "💬 Top by messages",
	models.RankingByJackpot:         "🎰 Top by jackpots",
	models.RankingByConsecutiveDays: "🔥 Top by streak",
}

func rankingText(result *models.RankingResult) string {
	if len(result.Users) == 0 {
		return "Nobody on the board yet. Send /checkin to be the first!"
	}

	var b strings.Builder
	b.WriteString(rankingTitles[result.Type])
	for i, user := range result.Users {
		var value int
		switch result.Type {
		case models.RankingByChatCount:
			value = user.ChatCount
		case models.RankingByJackpot:
			value = user.JackpotCount
		case models.RankingByConsecutiveDays:
			value = user.ConsecutiveDays
		default:
			value = user.TotalScore
		}
		fmt.Fprintf(&b, "\n%d. %s - %d", i+1, displayName(user.Username, user.ID), value)
	}
	return b.String()
}

func dailyStatsText(stats *models.DailyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Stats for %s\n", stats.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Check-ins: %d\n", stats.CheckInCount)
	fmt.Fprintf(&b, "Messages: %d from %d user(s)\n", stats.TotalMessages, stats.TotalUsers)
	fmt.Fprintf(&b, "Points awarded: %d\n", stats.TotalScore)
	fmt.Fprintf(&b, "Jackpots: %d", stats.JackpotCount)
	appendTopUsers(&b, stats.TopUsers)
	return b.String()
}

func monthlyStatsText(stats *models.MonthlyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 Stats for %04d-%02d\n", stats.Year, stats.Month)
	fmt.Fprintf(&b, "Check-ins: %d\n", stats.CheckInCount)
	fmt.Fprintf(&b, "Messages: %d from %d user(s)\n", stats.TotalMessages, stats.TotalUsers)
	fmt.Fprintf(&b, "Points awarded: %d\n", stats.TotalScore)
	fmt.Fprintf(&b, "Jackpots: %d", stats.JackpotCount)
	if stats.MostActiveDate != nil {
		fmt.Fprintf(&b, "\nBusiest day: %s (%d messages)", stats.MostActiveDate.Format("Jan 02"), stats.MostActiveCount)
	}
	appendTopUsers(&b, stats.TopUsers)
	return b.String()
}

func appendTopUsers(b *strings.Builder, topUsers []models.UserStats) {
	if len(topUsers) == 0 {
		return
	}
	b.WriteString("\n\nTop users:")
	for i, u := range topUsers {
		fmt.Fprintf(b, "\n%d. %s - %d pts", i+1, displayName(u.Username, u.UserID), u.TotalScore)
	}
}
