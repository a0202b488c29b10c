// Package interview runs AI mock interviews: question generation, answer
// scoring and spoken-answer transcription.
package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"

	"hirelink/internal/domain/ai"
	"hirelink/internal/domain/interview"
)

var (
	ErrInvalidSettings          = errors.New("invalid interview settings")
	ErrSessionNotFound          = errors.New("interview session not found")
	ErrQuestionNotFound         = errors.New("question index out of range")
	ErrSessionFinished          = errors.New("interview session already finished")
	ErrEmptyAnswer              = errors.New("answer is empty")
	ErrAudioTooLarge            = errors.New("audio file too large")
	ErrTranscriptionUnavailable = errors.New("transcription service unavailable")
	ErrInternal                 = errors.New("internal error")
)

type SessionStore interface {
	Save(ctx context.Context, s interview.Session) error
	Get(ctx context.Context, id string) (interview.Session, error)
	// Update applies fn atomically to the stored session.
	Update(ctx context.Context, id string, fn func(*interview.Session) error) (interview.Session, error)
}

type Config struct {
	DefaultQuestionCount int
	MaxQuestionCount     int
	MaxAudioBytes        int64
}

type Service struct {
	chat        ai.ChatModel
	transcriber ai.Transcriber
	store       SessionStore
	cfg         Config
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(chat ai.ChatModel, transcriber ai.Transcriber, store SessionStore, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultQuestionCount <= 0 {
		cfg.DefaultQuestionCount = 5
	}
	if cfg.MaxQuestionCount < cfg.DefaultQuestionCount {
		cfg.MaxQuestionCount = cfg.DefaultQuestionCount
	}
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = 10 << 20
	}
	return &Service{
		chat:        chat,
		transcriber: transcriber,
		store:       store,
		cfg:         cfg,
		logger:      logger.Named("interview"),
		now:         time.Now,
		newID:       shortuuid.New,
	}
}

// Start creates a session. Questions come from the chat model; when it is
// unavailable or answers with something unusable the built-in question bank
// is used instead.
func (s *Service) Start(ctx context.Context, userID uuid.UUID, settings interview.Settings) (interview.Session, error) {
	settings, err := settings.Normalize(s.cfg.DefaultQuestionCount, s.cfg.MaxQuestionCount)
	if err != nil {
		return interview.Session{}, ErrInvalidSettings
	}

	questions, source := s.generateQuestions(ctx, settings)
	sess := interview.Session{
		ID:             s.newID(),
		UserID:         userID,
		Settings:       settings,
		Questions:      questions,
		QuestionSource: source,
		Answers:        []interview.Answer{},
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("save session failed", zap.Error(err))
		return interview.Session{}, ErrInternal
	}
	return sess, nil
}

func (s *Service) generateQuestions(ctx context.Context, settings interview.Settings) ([]string, interview.QuestionSource) {
	content, err := s.chat.Complete(ctx, questionSystemPrompt, questionPrompt(settings))
	if err == nil {
		if qs, ok := parseQuestions(content, settings.QuestionCount); ok {
			return qs, interview.SourceModel
		}
		err = ai.ErrInternal
	}

	s.logger.Warn("question generation fell back to question bank",
		zap.NamedError("kind", ai.Kind(err)),
		zap.Error(err),
	)
	return interview.FallbackQuestions(settings), interview.SourceFallback
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID, id string) (interview.Session, error) {
	return s.load(ctx, userID, id)
}

// Answer scores a typed answer and records it. A scoring outage does not
// fail the call; the answer is stored unscored.
func (s *Service) Answer(ctx context.Context, userID uuid.UUID, id string, index int, text string) (interview.Answer, error) {
	sess, err := s.loadOpen(ctx, userID, id, index)
	if err != nil {
		return interview.Answer{}, err
	}
	return s.record(ctx, &sess, index, text, false)
}

// AnswerAudio transcribes a spoken answer, then handles it like Answer.
// Transcription has no fallback.
func (s *Service) AnswerAudio(ctx context.Context, userID uuid.UUID, id string, index int, filename string, audio []byte) (interview.Answer, error) {
	if int64(len(audio)) > s.cfg.MaxAudioBytes {
		return interview.Answer{}, ErrAudioTooLarge
	}
	if len(audio) == 0 {
		return interview.Answer{}, ErrEmptyAnswer
	}

	sess, err := s.loadOpen(ctx, userID, id, index)
	if err != nil {
		return interview.Answer{}, err
	}

	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		switch ai.Kind(err) {
		case ai.ErrUnavailable:
			return interview.Answer{}, ErrTranscriptionUnavailable
		case ai.ErrInvalidInput:
			return interview.Answer{}, ErrEmptyAnswer
		default:
			s.logger.Error("transcription failed", zap.String("session_id", id), zap.Error(err))
			return interview.Answer{}, ErrInternal
		}
	}
	return s.record(ctx, &sess, index, text, true)
}

// Finish closes the session and summarizes it. Finishing twice returns the
// same summary.
func (s *Service) Finish(ctx context.Context, userID uuid.UUID, id string) (interview.Summary, error) {
	if _, err := s.load(ctx, userID, id); err != nil {
		return interview.Summary{}, err
	}
	sess, err := s.update(ctx, userID, id, func(sess *interview.Session) error {
		if !sess.Finished() {
			now := s.now().UTC()
			sess.FinishedAt = &now
		}
		return nil
	})
	if err != nil {
		return interview.Summary{}, err
	}
	return sess.Summarize(*sess.FinishedAt), nil
}

func (s *Service) record(ctx context.Context, sess *interview.Session, index int, text string, fromAudio bool) (interview.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return interview.Answer{}, ErrEmptyAnswer
	}

	a := interview.Answer{
		QuestionIndex: index,
		Text:          text,
		FromAudio:     fromAudio,
		Evaluation:    s.evaluate(ctx, sess.Settings, sess.Questions[index], text),
		AnsweredAt:    s.now().UTC(),
	}
	// Other answers may have been stored while this one was evaluated.
	if _, err := s.update(ctx, sess.UserID, sess.ID, func(latest *interview.Session) error {
		return latest.Record(a)
	}); err != nil {
		return interview.Answer{}, err
	}
	return a, nil
}

func (s *Service) update(ctx context.Context, userID uuid.UUID, id string, fn func(*interview.Session) error) (interview.Session, error) {
	sess, err := s.store.Update(ctx, strings.TrimSpace(id), func(sess *interview.Session) error {
		if sess.UserID != userID {
			return interview.ErrSessionNotFound
		}
		return fn(sess)
	})
	if err != nil {
		if errors.Is(err, interview.ErrSessionNotFound) {
			return interview.Session{}, ErrSessionNotFound
		}
		if mapped := mapSessionError(err); mapped != ErrInternal {
			return interview.Session{}, mapped
		}
		s.logger.Error("update session failed", zap.String("session_id", id), zap.Error(err))
		return interview.Session{}, ErrInternal
	}
	return sess, nil
}

func (s *Service) evaluate(ctx context.Context, settings interview.Settings, question, answer string) interview.Evaluation {
	content, err := s.chat.Complete(ctx, scoringSystemPrompt, scoringPrompt(settings, question, answer))
	if err == nil {
		if ev, ok := parseEvaluation(content); ok {
			return ev
		}
		err = ai.ErrInternal
	}

	s.logger.Warn("answer left unscored", zap.NamedError("kind", ai.Kind(err)), zap.Error(err))
	return interview.Evaluation{Status: interview.StatusUnscored}
}

func (s *Service) load(ctx context.Context, userID uuid.UUID, id string) (interview.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return interview.Session{}, ErrSessionNotFound
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, interview.ErrSessionNotFound) {
			return interview.Session{}, ErrSessionNotFound
		}
		return interview.Session{}, ErrInternal
	}
	// Other users' sessions are reported as missing.
	if sess.UserID != userID {
		return interview.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) loadOpen(ctx context.Context, userID uuid.UUID, id string, index int) (interview.Session, error) {
	sess, err := s.load(ctx, userID, id)
	if err != nil {
		return interview.Session{}, err
	}
	if sess.Finished() {
		return interview.Session{}, ErrSessionFinished
	}
	if index < 0 || index >= len(sess.Questions) {
		return interview.Session{}, ErrQuestionNotFound
	}
	return sess, nil
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, interview.ErrSessionFinished):
		return ErrSessionFinished
	case errors.Is(err, interview.ErrQuestionNotFound):
		return ErrQuestionNotFound
	default:
		return ErrInternal
	}
}
