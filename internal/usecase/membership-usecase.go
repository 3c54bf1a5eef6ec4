package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/rs/zerolog"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/metrics"
)

const (
	MemberStatusLeft   = "left"
	MemberStatusKicked = "kicked"

	methodGetChatMember = "getChatMember"
)

// LookupFailurePolicy decides access when membership cannot be determined.
type LookupFailurePolicy int8

const (
	// FailOpen grants access when the lookup fails, so the assistant stays
	// usable if the bot lost admin rights in the channel.
	FailOpen = LookupFailurePolicy(iota)
	FailClosed
)

func ParseLookupFailurePolicy(s string) LookupFailurePolicy {
	if s == config.LookupErrorClosed {
		return FailClosed
	}
	return FailOpen
}

func (p LookupFailurePolicy) String() string {
	if p == FailClosed {
		return config.LookupErrorClosed
	}
	return config.LookupErrorOpen
}

type MembershipUsecaseDeps struct {
	Bot     Bot
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

type MembershipUsecase struct {
	MembershipUsecaseDeps
	requiredChannel string
	onLookupError   LookupFailurePolicy
}

func NewMembershipUsecase(
	deps MembershipUsecaseDeps,
	requiredChannel string,
	onLookupError LookupFailurePolicy,
) *MembershipUsecase {
	return &MembershipUsecase{
		MembershipUsecaseDeps: deps,
		requiredChannel:       requiredChannel,
		onLookupError:         onLookupError,
	}
}

func (m *MembershipUsecase) RequiredChannel() string {
	return m.requiredChannel
}

// IsAuthorized reports whether userID may use gated commands. Without a
// required channel everyone is authorized.
func (m *MembershipUsecase) IsAuthorized(userID int64) bool {
	if m.requiredChannel == "" {
		return true
	}
	status, err := m.memberStatus(userID)
	if err != nil {
		allowed := m.onLookupError == FailOpen
		m.count(metrics.MembershipLookupFailed)
		m.Logger.Error().Err(err).
			Int64("user_id", userID).
			Str("channel", m.requiredChannel).
			Str("policy", m.onLookupError.String()).
			Bool("allowed", allowed).
			Msg("failed to check channel membership")
		return allowed
	}
	switch status {
	case MemberStatusLeft, MemberStatusKicked:
		m.count(metrics.MembershipNotMember)
		return false
	default:
		m.count(metrics.MembershipMember)
		return true
	}
}

func (m *MembershipUsecase) memberStatus(userID int64) (string, error) {
	resp, err := m.Bot.MakeRequest(methodGetChatMember, api.Params{
		"chat_id": m.requiredChannel,
		"user_id": strconv.FormatInt(userID, 10),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat member: %w", err)
	}
	var member api.ChatMember
	if err = json.Unmarshal(resp.Result, &member); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat member: %w", err)
	}
	return member.Status, nil
}

func (m *MembershipUsecase) count(result string) {
	if m.Metrics != nil {
		m.Metrics.MembershipChecks.WithLabelValues(result).Inc()
	}
}
