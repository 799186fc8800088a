package main

import (
	"context"
	"log"
	"time"

	"streakbot/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	tele "gopkg.in/telebot.v3"
)

// DigestJob posts the daily summary to the group every evening and the
// previous month's recap on the first of each month.
type DigestJob struct {
	container *do.Injector
	bot       *tele.Bot
	chatID    int64

	dailySpec   string
	monthlySpec string
}

func NewDigestJob(container *do.Injector, bot *tele.Bot, chatID int64, dailySpec, monthlySpec string) *DigestJob {
	return &DigestJob{
		container:   container,
		bot:         bot,
		chatID:      chatID,
		dailySpec:   dailySpec,
		monthlySpec: monthlySpec,
	}
}

func (j *DigestJob) Start(cronRunner *cron.Cron) error {
	if _, err := cronRunner.AddFunc(j.dailySpec, j.runDaily); err != nil {
		return err
	}
	if _, err := cronRunner.AddFunc(j.monthlySpec, j.runMonthly); err != nil {
		return err
	}

	log.Println("digest cronjob started, daily:", j.dailySpec, "monthly:", j.monthlySpec)
	return nil
}

func (j *DigestJob) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serviceStats, err := do.Invoke[*services.ServiceStats](j.container)
	if err != nil {
		log.Println("daily digest:", err)
		return
	}

	stats, err := serviceStats.GetDailyStats(ctx, time.Now())
	if err != nil {
		log.Println("daily digest:", err)
		return
	}

	j.send(dailyDigestText(stats))
}

func (j *DigestJob) runMonthly() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serviceStats, err := do.Invoke[*services.ServiceStats](j.container)
	if err != nil {
		log.Println("monthly digest:", err)
		return
	}

	// the recap covers the month that just ended
	last := time.Now().AddDate(0, -1, 0)
	stats, err := serviceStats.GetMonthlyStats(ctx, last.Year(), int(last.Month()))
	if err != nil {
		log.Println("monthly digest:", err)
		return
	}

	j.send(monthlyDigestText(stats))
}

func (j *DigestJob) send(text string) {
	chat := &tele.Chat{ID: j.chatID}
	if _, err := j.bot.Send(chat, text); err != nil {
		log.Println("send digest:", err)
	}
}
