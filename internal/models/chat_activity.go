package models

import (
	"math/rand"
	"time"

	"github.com/uptrace/bun"
)

type ChatActivity struct {
	bun.BaseModel `bun:"table:chat_activity"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	MessageID     int64     `bun:"message_id" json:"message_id"`
	BaseScore     int       `bun:"base_score" json:"base_score"`
	IsJackpot     bool      `bun:"is_jackpot" json:"is_jackpot"`
	Multiplier    int       `bun:"multiplier" json:"multiplier"`
	FinalScore    int       `bun:"final_score" json:"final_score"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// Rand is the source of randomness for message scoring. *rand.Rand
// satisfies it; tests pass a seeded instance.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// globalRand delegates to the lock-protected top-level math/rand
// source, unlike a shared *rand.Rand it is safe for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int   { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

var DefaultRand Rand = globalRand{}

// NewChatActivity scores a single message: a uniform base score from
// the configured range, a jackpot roll, and a uniform multiplier when
// the roll hits. Callers validate cfg first.
func NewChatActivity(userID, messageID int64, cfg *ScoreConfig, rng Rand) *ChatActivity {
	baseScore := cfg.ChatScoreMin + rng.Intn(cfg.ChatScoreMax-cfg.ChatScoreMin+1)

	isJackpot := rng.Float64() < cfg.JackpotChance

	multiplier := 1
	if isJackpot {
		multiplier = cfg.MultiplierMin + rng.Intn(cfg.MultiplierMax-cfg.MultiplierMin+1)
	}

	return &ChatActivity{
		UserID:     userID,
		MessageID:  messageID,
		BaseScore:  baseScore,
		IsJackpot:  isJackpot,
		Multiplier: multiplier,
		FinalScore: baseScore * multiplier,
		CreatedAt:  time.Now(),
	}
}
