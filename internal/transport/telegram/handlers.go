package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"mentorbot/internal/model"
	"mentorbot/internal/repository"
	"mentorbot/internal/service"
)

// Handlers wires bot commands to the service layer.
type Handlers struct {
	survey     *service.SurveyService
	profiles   *service.ProfileService
	chat       *service.ChatService
	advice     *service.AdviceService
	meditation *service.MeditationService
	reminders  *service.ReminderService
	users      repository.UserRepo
	events     service.Broadcaster
}

func NewHandlers(
	survey *service.SurveyService,
	profiles *service.ProfileService,
	chat *service.ChatService,
	advice *service.AdviceService,
	meditation *service.MeditationService,
	reminders *service.ReminderService,
	users repository.UserRepo,
	events service.Broadcaster,
) *Handlers {
	return &Handlers{
		survey:     survey,
		profiles:   profiles,
		chat:       chat,
		advice:     advice,
		meditation: meditation,
		reminders:  reminders,
		users:      users,
		events:     events,
	}
}

// SetReminders injects the reminder service. It is wired after construction
// because the scheduler's notify callback needs the handlers first.
func (h *Handlers) SetReminders(reminders *service.ReminderService) {
	h.reminders = reminders
}

// Register attaches every handler to the router.
func (h *Handlers) Register(r *Router) {
	r.AddCommand("start", h.handleStart)
	r.AddCommand("help", h.handleHelp)
	r.AddCommand("survey", h.handleSurvey)
	r.AddCommand("cancel", h.handleCancel)
	r.AddCommand("profile", h.handleProfile)
	r.AddCommand("retry", h.handleRetry)
	r.AddCommand("advice", h.handleAdvice)
	r.AddCommand("meditate", h.handleMeditate)
	r.AddCommand("remind", h.handleRemind)

	r.AddCallbackQuery("^overwrite_(yes|no)$", h.handleOverwriteCallback)
	r.AddCallbackQuery("^meditate_[a-z]+$", h.handleMeditateCallback)

	r.SetDefaultText(h.handleText)
}

const helpText = `Here is what I can do:

/survey - take the personality survey
/profile - show your profile
/retry - rebuild your profile if generation failed
/advice - get a suggestion matched to your type
/meditate - guided meditation
/remind - weekly check-in reminders, e.g. /remind 9:00 mon wed fri
/cancel - abort the current survey
/help - this message

Anything else you write, I answer as your mentor.`

func (h *Handlers) handleStart(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	if err := h.users.Upsert(ctx, msg.From.ID, msg.From.Username, msg.From.FullName()); err != nil {
		log.Printf("[Bot] user upsert failed: %v", err)
	}

	text := fmt.Sprintf(
		"Hi %s! I am your personal mentor.\n\n"+
			"I start by getting to know you through a short survey, then use what "+
			"I learn to give advice, meditations and honest conversation that fit "+
			"who you are.\n\nSend /survey when you are ready, or /help for everything I can do.",
		msg.From.FirstName)
	h.send(ctx, client, msg.Chat.ID, text, nil)
}

func (h *Handlers) handleHelp(ctx context.Context, client *Client, update Update) {
	h.send(ctx, client, update.Message.Chat.ID, helpText, nil)
}

func (h *Handlers) handleSurvey(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	step, err := h.survey.Start(ctx, msg.From.ID, false)
	if errors.Is(err, service.ErrProfileExists) {
		markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
			{Text: "Start over", CallbackData: "overwrite_yes"},
			{Text: "Keep it", CallbackData: "overwrite_no"},
		}}}
		h.send(ctx, client, msg.Chat.ID,
			"You already have a profile. Taking the survey again will replace it "+
				"once the new one is finished. Start over?", markup)
		return
	}
	if err != nil {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}
	h.events.BroadcastEvent("survey_started", map[string]int64{"userId": msg.From.ID})
	h.send(ctx, client, msg.Chat.ID,
		"Let's get acquainted first. A few quick questions about you.", &ReplyKeyboardRemove{RemoveKeyboard: true})
	h.sendStep(ctx, client, msg.Chat.ID, step)
}

func (h *Handlers) handleOverwriteCallback(ctx context.Context, client *Client, update Update) {
	cb := update.CallbackQuery
	if err := client.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		log.Printf("[Bot] callback ack failed: %v", err)
	}
	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
		// Retire the inline keyboard so the choice cannot be pressed twice.
		choice := "Start over"
		if cb.Data == "overwrite_no" {
			choice = "Keep it"
		}
		if err := client.EditMessageText(ctx, chatID, cb.Message.MessageID,
			"You already have a profile. "+choice+"."); err != nil {
			log.Printf("[Bot] edit failed: %v", err)
		}
	}

	if cb.Data == "overwrite_no" {
		h.send(ctx, client, chatID, "Good, keeping your current profile.", nil)
		return
	}

	step, err := h.survey.Start(ctx, cb.From.ID, true)
	if err != nil {
		h.sendOops(ctx, client, chatID, err)
		return
	}
	h.events.BroadcastEvent("survey_started", map[string]int64{"userId": cb.From.ID})
	h.send(ctx, client, chatID,
		"Starting fresh. A few quick questions about you.", &ReplyKeyboardRemove{RemoveKeyboard: true})
	h.sendStep(ctx, client, chatID, step)
}

func (h *Handlers) handleCancel(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	cancelled, err := h.survey.Cancel(ctx, msg.From.ID)
	if err != nil {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}
	if !cancelled {
		h.send(ctx, client, msg.Chat.ID, "Nothing to cancel right now.", nil)
		return
	}
	h.events.BroadcastEvent("survey_cancelled", map[string]int64{"userId": msg.From.ID})
	h.send(ctx, client, msg.Chat.ID,
		"Survey cancelled. Your answers were discarded; send /survey to start again.",
		&ReplyKeyboardRemove{RemoveKeyboard: true})
}

func (h *Handlers) handleProfile(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	profile, err := h.profiles.Get(ctx, msg.From.ID)
	if err != nil {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}
	if profile == nil {
		h.send(ctx, client, msg.Chat.ID,
			"You do not have a profile yet. Send /survey to build one.", nil)
		return
	}
	if !profile.Usable() {
		h.send(ctx, client, msg.Chat.ID,
			failureMessage(profile.FailureReason)+"\n\nSend /retry to try again.", nil)
		return
	}

	header := fmt.Sprintf("Your type: %s", profile.Type.DisplayName())
	if profile.SecondaryType != "" {
		header += fmt.Sprintf(" (with a %s side)", strings.ToLower(profile.SecondaryType.DisplayName()))
	}
	h.send(ctx, client, msg.Chat.ID, header+"\n\n"+profile.ProfileText, nil)
}

func (h *Handlers) handleRetry(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	h.typing(ctx, client, msg.Chat.ID)

	profile, err := h.profiles.Retry(ctx, msg.From.ID)
	if errors.Is(err, service.ErrNoStoredAnswers) {
		h.send(ctx, client, msg.Chat.ID,
			"I have no saved answers for you. Send /survey to take the survey.", nil)
		return
	}
	if err != nil {
		genErr := service.AsGenerationError(err)
		h.events.BroadcastEvent("generation_failed", map[string]interface{}{
			"userId": msg.From.ID, "reason": genErr.Reason,
		})
		h.send(ctx, client, msg.Chat.ID, failureMessage(genErr.Reason), nil)
		return
	}

	h.events.BroadcastEvent("profile_built", map[string]interface{}{
		"userId": msg.From.ID, "type": profile.Type,
	})
	h.send(ctx, client, msg.Chat.ID, "Here is your profile:\n\n"+profile.ProfileText, nil)
}

func (h *Handlers) handleAdvice(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	advice, err := h.advice.Advice(ctx, msg.From.ID)
	if errors.Is(err, service.ErrNoUsableProfile) {
		h.send(ctx, client, msg.Chat.ID,
			"I can only give advice that fits you once you complete the survey. Send /survey to start.", nil)
		return
	}
	if err != nil {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}
	h.send(ctx, client, msg.Chat.ID, advice, nil)
}

func (h *Handlers) handleMeditate(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	kinds := h.meditation.Kinds()
	row := make([]InlineKeyboardButton, 0, len(kinds))
	for _, kind := range kinds {
		row = append(row, InlineKeyboardButton{
			Text:         capitalize(kind),
			CallbackData: "meditate_" + kind,
		})
	}
	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{row}}
	h.send(ctx, client, msg.Chat.ID, "What do you need right now?", markup)
}

func (h *Handlers) handleMeditateCallback(ctx context.Context, client *Client, update Update) {
	cb := update.CallbackQuery
	if err := client.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		log.Printf("[Bot] callback ack failed: %v", err)
	}
	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	kind := strings.TrimPrefix(cb.Data, "meditate_")
	m, err := h.meditation.Session(ctx, cb.From.ID, kind)
	if err != nil {
		h.send(ctx, client, chatID, "I do not know that one. Try /meditate again.", nil)
		return
	}
	h.send(ctx, client, chatID, m.Title+"\n\n"+m.Script, nil)
	if len(m.Audio) > 0 {
		if err := client.SendVoice(ctx, chatID, m.Audio, m.Title); err != nil {
			log.Printf("[Bot] voice send failed: %v", err)
		}
	}
}

func (h *Handlers) handleRemind(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	args := msg.CommandArguments()

	if args == "" {
		cfg, err := h.reminders.Get(ctx, msg.From.ID)
		if err != nil {
			h.sendOops(ctx, client, msg.Chat.ID, err)
			return
		}
		if cfg == nil || !cfg.Enabled {
			h.send(ctx, client, msg.Chat.ID,
				"No reminders set. Use for example:\n/remind 9:00 mon wed fri\n/remind 20:30 daily\n/remind off", nil)
			return
		}
		h.send(ctx, client, msg.Chat.ID, "Current schedule: "+describeSchedule(cfg)+"\nUse /remind off to stop.", nil)
		return
	}

	if strings.EqualFold(args, "off") {
		if err := h.reminders.Disable(ctx, msg.From.ID); err != nil {
			h.sendOops(ctx, client, msg.Chat.ID, err)
			return
		}
		h.send(ctx, client, msg.Chat.ID, "Reminders are off.", nil)
		return
	}

	cfg, err := parseReminderArgs(msg.From.ID, args)
	if err != nil {
		h.send(ctx, client, msg.Chat.ID,
			"I could not read that schedule. Use for example:\n/remind 9:00 mon wed fri\n/remind 20:30 daily", nil)
		return
	}
	if err := h.reminders.Set(ctx, cfg); err != nil {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}
	h.send(ctx, client, msg.Chat.ID, "Done. "+describeSchedule(cfg), nil)
}

// handleText feeds input to an in-flight survey, or falls back to mentor
// chat.
func (h *Handlers) handleText(ctx context.Context, client *Client, update Update) {
	msg := update.Message
	userID := msg.From.ID

	step, err := h.survey.Submit(ctx, userID, msg.Text)
	if err == nil {
		h.sendStep(ctx, client, msg.Chat.ID, step)
		return
	}
	if !errors.Is(err, service.ErrNoActiveSession) {
		h.sendOops(ctx, client, msg.Chat.ID, err)
		return
	}

	// No survey in flight: mentor chat.
	h.typing(ctx, client, msg.Chat.ID)
	reply, err := h.chat.Reply(ctx, userID, msg.Text)
	if err != nil {
		genErr := service.AsGenerationError(err)
		h.send(ctx, client, msg.Chat.ID, failureMessage(genErr.Reason), nil)
		return
	}
	h.events.BroadcastEvent("chat_message", map[string]int64{"userId": userID})
	h.send(ctx, client, msg.Chat.ID, reply, nil)
}

// ReminderNotifier returns the callback the scheduler fires for each due
// reminder.
func (h *Handlers) ReminderNotifier(client *Client) func(userID int64) {
	return func(userID int64) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		text := "Time for a short check-in. How has your day been?"
		if advice, err := h.advice.Advice(ctx, userID); err == nil {
			text += "\n\nA thought for today:\n" + advice
		}
		if err := client.SendMessage(ctx, userID, text, nil); err != nil {
			log.Printf("[Bot] reminder send failed for user %d: %v", userID, err)
			return
		}
		h.events.BroadcastEvent("reminder_sent", map[string]int64{"userId": userID})
	}
}

// sendStep renders one survey step result into messages.
func (h *Handlers) sendStep(ctx context.Context, client *Client, chatID int64, step *service.StepResult) {
	if step.Interpretation != "" {
		h.send(ctx, client, chatID, step.Interpretation, nil)
	}

	switch step.Kind {
	case service.StepAskDemographic:
		h.send(ctx, client, chatID, step.Question, &ReplyKeyboardRemove{RemoveKeyboard: true})

	case service.StepAskConfirm:
		h.send(ctx, client, chatID, step.Question, YesNoKeyboard())

	case service.StepAskInstrument:
		text := fmt.Sprintf("Question %d of %d\n\n%s", step.Index+1, step.Total, step.Question)
		h.send(ctx, client, chatID, text, OptionKeyboard(step.Options))

	case service.StepInvalid:
		h.send(ctx, client, chatID, step.Reason, nil)

	case service.StepCancelled:
		h.send(ctx, client, chatID,
			"Alright, maybe another time. Send /survey whenever you are ready.",
			&ReplyKeyboardRemove{RemoveKeyboard: true})

	case service.StepComplete:
		h.send(ctx, client, chatID, "That was the last question, thank you! Give me a moment...",
			&ReplyKeyboardRemove{RemoveKeyboard: true})
		if step.GenErr != nil {
			h.events.BroadcastEvent("generation_failed", map[string]interface{}{
				"userId": step.Profile.UserID, "reason": step.GenErr.Reason,
			})
			h.send(ctx, client, chatID, failureMessage(step.GenErr.Reason), nil)
			return
		}
		h.events.BroadcastEvent("profile_built", map[string]interface{}{
			"userId": step.Profile.UserID, "type": step.Profile.Type,
		})
		h.send(ctx, client, chatID, "Here is your profile:\n\n"+step.Profile.ProfileText, nil)
	}
}

func (h *Handlers) send(ctx context.Context, client *Client, chatID int64, text string, markup interface{}) {
	if err := client.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Printf("[Bot] send failed for chat %d: %v", chatID, err)
	}
}

func (h *Handlers) typing(ctx context.Context, client *Client, chatID int64) {
	if err := client.SendChatAction(ctx, chatID, "typing"); err != nil {
		log.Printf("[Bot] chat action failed for chat %d: %v", chatID, err)
	}
}

func (h *Handlers) sendOops(ctx context.Context, client *Client, chatID int64, err error) {
	log.Printf("[Bot] handler error for chat %d: %v", chatID, err)
	h.send(ctx, client, chatID, "Something went wrong on my side. Please try again.", nil)
}

// failureMessage maps a generation failure category to user-facing text.
func failureMessage(reason model.GenerationFailure) string {
	switch reason {
	case model.FailureQuotaExceeded:
		return "I am a bit overloaded right now and could not write your profile. " +
			"Your answers are saved; send /retry in a few minutes."
	case model.FailureAuth:
		return "My writing service rejected me, which is a configuration problem on my side. " +
			"Your answers are saved; please try /retry later."
	case model.FailureTransport:
		return "I could not reach my writing service. Your answers are saved; " +
			"send /retry when the connection is better."
	default:
		return "Something unexpected went wrong while writing your profile. " +
			"Your answers are saved; send /retry to try again."
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// parseReminderArgs reads "HH:MM day day ..." or "HH:MM daily".
func parseReminderArgs(userID int64, args string) (*model.ReminderConfig, error) {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) < 2 {
		return nil, fmt.Errorf("expected time and days")
	}

	hhmm := strings.SplitN(fields[0], ":", 2)
	if len(hhmm) != 2 {
		return nil, fmt.Errorf("bad time %q", fields[0])
	}
	hour, err := strconv.Atoi(hhmm[0])
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("bad hour %q", hhmm[0])
	}
	minute, err := strconv.Atoi(hhmm[1])
	if err != nil || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("bad minute %q", hhmm[1])
	}

	var days []time.Weekday
	for _, field := range fields[1:] {
		if field == "daily" || field == "everyday" {
			days = []time.Weekday{
				time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
				time.Thursday, time.Friday, time.Saturday,
			}
			break
		}
		day, ok := weekdayNames[field[:min(3, len(field))]]
		if !ok {
			return nil, fmt.Errorf("bad day %q", field)
		}
		days = append(days, day)
	}

	return &model.ReminderConfig{
		UserID:  userID,
		Enabled: true,
		Days:    days,
		Hour:    hour,
		Minute:  minute,
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func describeSchedule(cfg *model.ReminderConfig) string {
	names := make([]string, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		names = append(names, d.String()[:3])
	}
	return fmt.Sprintf("I will check in at %02d:%02d on %s.",
		cfg.Hour, cfg.Minute, strings.Join(names, ", "))
}
