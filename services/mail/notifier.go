package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed templates/*.txt
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))

const sendTimeout = 30 * time.Second

// Sender delivers a single plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier e-mails donors about their posts. Delivery is best effort.
type Notifier struct {
	db         *gorm.DB
	sender     Sender
	demoDomain string
	logger     *logging.Service
	dispatch   func(func())
	inflight   sync.WaitGroup
}

func NewNotifier(cfg *config.Config, db *gorm.DB, sender Sender, logger *logging.Service) *Notifier {
	return &Notifier{
		db:         db,
		sender:     sender,
		demoDomain: strings.ToLower(cfg.Auth.DemoEmailDomain),
		logger:     logger,
		dispatch:   func(f func()) { go f() },
	}
}

type notice struct {
	Post  models.FoodPost
	Claim models.Claim
}

func (n *Notifier) FoodClaimed(ctx context.Context, post models.FoodPost, claim models.Claim) {
	n.notifyDonor(ctx, "food_claimed.txt", "Your food post was claimed", post, claim)
}

func (n *Notifier) FoodDistributed(ctx context.Context, post models.FoodPost, claim models.Claim) {
	n.notifyDonor(ctx, "food_distributed.txt", "Your donation was distributed", post, claim)
}

func (n *Notifier) notifyDonor(ctx context.Context, name, subject string, post models.FoodPost, claim models.Claim) {
	// The request context ends with the response; sending outlives it.
	ctx = context.WithoutCancel(ctx)

	n.inflight.Add(1)
	n.dispatch(func() {
		defer n.inflight.Done()

		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		if err := n.send(ctx, name, subject, post, claim); err != nil && n.logger != nil {
			n.logger.Warn("donor notification failed",
				zap.String("template", name),
				zap.String("post_id", post.ID),
				zap.Error(err))
		}
	})
}

// Wait blocks until queued notifications finish or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pending notifications not delivered: %w", ctx.Err())
	}
}

func (n *Notifier) send(ctx context.Context, name, subject string, post models.FoodPost, claim models.Claim) error {
	var donor models.User
	if err := n.db.WithContext(ctx).First(&donor, "id = ?", post.DonorID).Error; err != nil {
		return fmt.Errorf("failed to load donor: %w", err)
	}

	if n.demoDomain != "" && strings.HasSuffix(strings.ToLower(donor.Email), "@"+n.demoDomain) {
		if n.logger != nil {
			n.logger.Debug("skipping notification for demo account", zap.String("user_id", donor.ID))
		}
		return nil
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, notice{Post: post, Claim: claim}); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	return n.sender.Send(ctx, donor.Email, subject, body.String())
}
