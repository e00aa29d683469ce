// Package service contains stuff related to the background processing
// of the application
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dreamcatcher/dream-api/model"
	"dreamcatcher/dream-api/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Classifier scores the emotional content of a dream transcript
type Classifier interface {
	Classify(ctx context.Context, text string) (model.MoodScores, error)
}

// ImageResolver turns an image reference (remote URL or local path)
// into a durable reference, or fails
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Stages of the capture flow a failure can be attributed to
type Stage string

const (
	StageValidation Stage = "validation"
	StageImage      Stage = "image"
	StageClassify   Stage = "classify"
	StageCommit     Stage = "commit"
)

var (
	ErrEmptyText   = errors.New("transcribed text is empty")
	ErrUnknownUser = errors.New("user does not exist")
)

// FlowError tags a capture failure with the stage it happened in, so
// callers can tell a rejected input from a broken adapter
type FlowError struct {
	Stage Stage
	Err   error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("capture failed during %s, %s", e.Stage, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func flowErr(stage Stage, err error) *FlowError {
	return &FlowError{Stage: stage, Err: err}
}

// IsValidation reports whether err is a capture rejection rather than
// an adapter or storage failure
func IsValidation(err error) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Stage == StageValidation
}

// TopMood is one display entry: label plus score rescaled to 0-100
type TopMood struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Capture runs the dream saving flow: validate, resolve the image,
// classify, persist. One forward pass, nothing is written until the
// final insert so a failure never leaves partial state behind
type Capture struct {
	store      *store.Store
	classifier Classifier
	images     ImageResolver

	// Images resolved since the last reset, for the "today" carousel
	mu            sync.Mutex
	sessionImages []string
}

func NewCapture(s *store.Store, c Classifier, i ImageResolver) *Capture {
	return &Capture{
		store:      s,
		classifier: c,
		images:     i,
	}
}

// SaveDream persists one dream for userID and returns the stored row
// together with the top 4 moods prepared for display
func (c *Capture) SaveDream(ctx context.Context, userID uint, title, text, imageRef string) (*model.Dream, []TopMood, error) {
	if text == "" {
		return nil, nil, flowErr(StageValidation, ErrEmptyText)
	}

	if _, err := c.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, flowErr(StageValidation, ErrUnknownUser)
		}

		return nil, nil, flowErr(StageCommit, err)
	}

	resolved, err := c.images.Resolve(ctx, imageRef)
	if err != nil || resolved == "" {
		if err == nil {
			err = errors.New("image resolver returned nothing")
		}

		zap.L().Error("Failed to resolve dream image", zap.Error(err), zap.Uint("userID", userID))
		return nil, nil, flowErr(StageImage, err)
	}

	scores, err := c.classifier.Classify(ctx, text)
	if err != nil {
		zap.L().Error("Failed to classify dream", zap.Error(err), zap.Uint("userID", userID))
		return nil, nil, flowErr(StageClassify, err)
	}

	top := make([]TopMood, 0, 4)
	for i, s := range scores {
		if i == 4 {
			break
		}

		top = append(top, TopMood{
			Label: s.Label,
			Score: int(s.Score * 100),
		})
	}

	if title == "" {
		title = "Generated Dream"
	}

	dream := &model.Dream{
		UserID:    userID,
		Title:     title,
		Content:   text,
		Mood:      scores,
		ImageRef:  resolved,
		CreatedAt: time.Now().UnixMilli(),
	}

	if _, err := c.store.InsertDream(ctx, dream); err != nil {
		zap.L().Error("Failed to persist dream", zap.Error(err), zap.Uint("userID", userID))
		return nil, nil, flowErr(StageCommit, err)
	}

	c.mu.Lock()
	c.sessionImages = append(c.sessionImages, resolved)
	c.mu.Unlock()

	return dream, top, nil
}

// SessionImages returns the image refs saved since the last reset
func (c *Capture) SessionImages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.sessionImages))
	copy(out, c.sessionImages)
	return out
}

func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionImages = nil
}
