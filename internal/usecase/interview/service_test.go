package interview

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/domain/ai"
	"hirelink/internal/domain/interview"
	"hirelink/internal/infrastructure/cache"
)

type scriptedChat struct {
	replies []string
	err     error
	prompts []string
}

func (c *scriptedChat) Complete(_ context.Context, _, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", ai.ErrInternal
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context, string, []byte) (string, error) {
	return f.text, f.err
}

func newService(chat ai.ChatModel, tr ai.Transcriber) *Service {
	store := cache.NewSessionStore(nil, time.Hour)
	return NewService(chat, tr, store, Config{DefaultQuestionCount: 3, MaxQuestionCount: 10, MaxAudioBytes: 16}, nil)
}

func TestStart_UsesModelQuestions(t *testing.T) {
	chat := &scriptedChat{replies: []string{"```json\n[\"Q1\", \"Q2\", \"Q3\", \"Q4\"]\n```"}}
	svc := newService(chat, fakeTranscriber{})

	sess, err := svc.Start(context.Background(), uuid.New(), interview.Settings{Role: "Go Developer", FocusAreas: []string{"concurrency"}})
	require.NoError(t, err)
	assert.Equal(t, interview.SourceModel, sess.QuestionSource)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, sess.Questions)
	assert.Equal(t, interview.LevelMid, sess.Settings.Level)
	assert.NotEmpty(t, sess.ID)
	assert.Contains(t, chat.prompts[0], "concurrency")
}

func TestStart_FallsBackToQuestionBank(t *testing.T) {
	for name, chat := range map[string]*scriptedChat{
		"unavailable": {err: ai.ErrUnavailable},
		"too few":     {replies: []string{`["only one"]`}},
		"not json":    {replies: []string{"Sure! Here are some questions."}},
	} {
		t.Run(name, func(t *testing.T) {
			sess, err := newService(chat, fakeTranscriber{}).Start(context.Background(), uuid.New(), interview.Settings{Role: "Go Developer", QuestionCount: 4})
			require.NoError(t, err)
			assert.Equal(t, interview.SourceFallback, sess.QuestionSource)
			assert.Len(t, sess.Questions, 4)
		})
	}
}

func TestStart_InvalidSettings(t *testing.T) {
	svc := newService(&scriptedChat{}, fakeTranscriber{})

	_, err := svc.Start(context.Background(), uuid.New(), interview.Settings{Role: " "})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	_, err = svc.Start(context.Background(), uuid.New(), interview.Settings{Role: "Dev", QuestionCount: 11})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func startSession(t *testing.T, chat *scriptedChat, tr ai.Transcriber) (*Service, interview.Session) {
	t.Helper()
	svc := newService(chat, tr)
	sess, err := svc.Start(context.Background(), uuid.New(), interview.Settings{Role: "Go Developer", QuestionCount: 2})
	require.NoError(t, err)
	return svc, sess
}

func TestAnswer_ScoredAndUnscored(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		`["Q1", "Q2"]`,
		`{"score": 12, "feedback": " Good depth. "}`,
	}}
	svc, sess := startSession(t, chat, fakeTranscriber{})
	ctx := context.Background()

	a, err := svc.Answer(ctx, sess.UserID, sess.ID, 0, "Goroutines are cheap")
	require.NoError(t, err)
	assert.Equal(t, interview.StatusScored, a.Evaluation.Status)
	assert.Equal(t, 10.0, a.Evaluation.Score)
	assert.Equal(t, "Good depth.", a.Evaluation.Feedback)

	chat.err = ai.ErrUnavailable
	a, err = svc.Answer(ctx, sess.UserID, sess.ID, 1, "Channels")
	require.NoError(t, err)
	assert.Equal(t, interview.StatusUnscored, a.Evaluation.Status)

	got, err := svc.Get(ctx, sess.UserID, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Answers, 2)
}

type lockedChat struct {
	mu    sync.Mutex
	inner *scriptedChat
}

func (c *lockedChat) Complete(ctx context.Context, system, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Complete(ctx, system, prompt)
}

func TestAnswer_ConcurrentAnswersAllKept(t *testing.T) {
	chat := &lockedChat{inner: &scriptedChat{replies: []string{
		`["Q1", "Q2", "Q3", "Q4"]`,
		`{"score": 7}`, `{"score": 7}`, `{"score": 7}`, `{"score": 7}`,
	}}}
	svc := newService(chat, fakeTranscriber{})
	ctx := context.Background()
	sess, err := svc.Start(ctx, uuid.New(), interview.Settings{Role: "Go Developer", QuestionCount: 4})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range sess.Questions {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Answer(ctx, sess.UserID, sess.ID, idx, fmt.Sprintf("answer %d", idx))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.Get(ctx, sess.UserID, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Answers, 4)
}

func TestAnswer_Errors(t *testing.T) {
	svc, sess := startSession(t, &scriptedChat{err: ai.ErrUnavailable}, fakeTranscriber{})
	ctx := context.Background()

	_, err := svc.Answer(ctx, sess.UserID, sess.ID, 5, "x")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.Answer(ctx, sess.UserID, sess.ID, 0, "  ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = svc.Answer(ctx, uuid.New(), sess.ID, 0, "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Answer(ctx, sess.UserID, "missing", 0, "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Finish(ctx, sess.UserID, sess.ID)
	require.NoError(t, err)
	_, err = svc.Answer(ctx, sess.UserID, sess.ID, 0, "x")
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestAnswerAudio(t *testing.T) {
	chat := &scriptedChat{replies: []string{`["Q1", "Q2"]`, `{"score": 7.25, "feedback": "ok"}`}}
	svc, sess := startSession(t, chat, fakeTranscriber{text: " spoken answer "})
	ctx := context.Background()

	a, err := svc.AnswerAudio(ctx, sess.UserID, sess.ID, 1, "answer.webm", []byte("audio"))
	require.NoError(t, err)
	assert.True(t, a.FromAudio)
	assert.Equal(t, "spoken answer", a.Text)
	assert.Equal(t, 7.3, a.Evaluation.Score)

	_, err = svc.AnswerAudio(ctx, sess.UserID, sess.ID, 0, "a.wav", make([]byte, 17))
	assert.ErrorIs(t, err, ErrAudioTooLarge)

	_, err = svc.AnswerAudio(ctx, sess.UserID, sess.ID, 0, "a.wav", nil)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestAnswerAudio_TranscriptionUnavailable(t *testing.T) {
	svc, sess := startSession(t, &scriptedChat{err: ai.ErrUnavailable}, fakeTranscriber{err: fmt.Errorf("whisper: %w", ai.ErrUnavailable)})

	_, err := svc.AnswerAudio(context.Background(), sess.UserID, sess.ID, 0, "a.wav", []byte("x"))
	assert.ErrorIs(t, err, ErrTranscriptionUnavailable)
}

func TestFinish_Summary(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		`["Q1", "Q2"]`,
		`{"score": 8, "feedback": "solid"}`,
	}}
	svc, sess := startSession(t, chat, fakeTranscriber{})
	ctx := context.Background()

	_, err := svc.Answer(ctx, sess.UserID, sess.ID, 0, "answer")
	require.NoError(t, err)

	sum, err := svc.Finish(ctx, sess.UserID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Answered)
	require.NotNil(t, sum.AverageScore)
	assert.Equal(t, 8.0, *sum.AverageScore)
	assert.Nil(t, sum.Results[1].Answer)

	again, err := svc.Finish(ctx, sess.UserID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sum.CompletedAt, again.CompletedAt)
}

func TestParseEvaluation(t *testing.T) {
	_, ok := parseEvaluation(`{"feedback": "no score"}`)
	assert.False(t, ok)

	ev, ok := parseEvaluation("Result: {\"score\": -3, \"feedback\": \"x\"}")
	require.True(t, ok)
	assert.Equal(t, 0.0, ev.Score)
}

func TestParseQuestions_ObjectForm(t *testing.T) {
	qs, ok := parseQuestions(`{"questions": ["a", " ", "b"]}`, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, qs)
}
