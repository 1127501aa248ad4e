package services

import (
	"context"
	"fmt"
	"html"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/config"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EditConflictNotice tells Holder that Requester's save of Article was
// rejected because Holder's version came first.
type EditConflictNotice struct {
	Article   *models.Article
	Holder    *models.Editor
	Requester *models.Editor
}

type ConflictNotifier interface {
	NotifyEditConflict(ctx context.Context, n EditConflictNotice)
}

type noopNotifier struct{}

func (noopNotifier) NotifyEditConflict(context.Context, EditConflictNotice) {}

type sendFunc func(msg *mail.SGMailV3) error

// EmailNotifier mails the holder of a newer article version through SendGrid.
type EmailNotifier struct {
	send   sendFunc
	from   *mail.Email
	appURL string
}

// NewConflictNotifier returns a SendGrid notifier when notify_edit_conflicts
// is on and SendGrid is configured, and a no-op notifier otherwise.
func NewConflictNotifier(cfg *config.Config) ConflictNotifier {
	if !cfg.LDFlag_NotifyEditConflicts {
		return noopNotifier{}
	}
	if cfg.SendgridAPIKey == "" || cfg.LDFlag_SendgridFromEmail == "" {
		utils.Logger.Warn("notify_edit_conflicts is on but SendGrid is not configured; notifications disabled.")
		return noopNotifier{}
	}
	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	return newEmailNotifier(func(msg *mail.SGMailV3) error {
		resp, err := client.Send(msg)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
		}
		return nil
	}, cfg.LDFlag_SendgridFromEmail, cfg.AppUrl)
}

func newEmailNotifier(send sendFunc, fromEmail, appURL string) *EmailNotifier {
	return &EmailNotifier{
		send:   send,
		from:   mail.NewEmail(config.OrganizationName, fromEmail),
		appURL: appURL,
	}
}

const conflictEmailHTML = `<p>Hello %s,</p>
<p>%s tried to save <strong>%s</strong> while your newer version was live.
Their save was rejected, and they were asked to reload and reapply their changes.</p>
<p><a href="%s">Open the article</a></p>`

func (n *EmailNotifier) message(notice EditConflictNotice) *mail.SGMailV3 {
	holderName := notice.Holder.DisplayName()
	requesterName := utils.FirstNonEmpty(notice.Requester.DisplayName(), "An editor")
	link := fmt.Sprintf("%s/admin/articles/%s", n.appURL, notice.Article.ID)

	subject := fmt.Sprintf("Edit conflict on %q", notice.Article.Title)
	plain := fmt.Sprintf(
		"Hello %s,\n\n%s tried to save %q while your newer version was live. "+
			"Their save was rejected, and they were asked to reload and reapply their changes.\n\n%s\n",
		holderName, requesterName, notice.Article.Title, link,
	)
	htmlContent := fmt.Sprintf(conflictEmailHTML,
		html.EscapeString(holderName),
		html.EscapeString(requesterName),
		html.EscapeString(notice.Article.Title),
		html.EscapeString(link),
	)
	to := mail.NewEmail(holderName, notice.Holder.Email)
	return mail.NewSingleEmail(n.from, subject, to, plain, htmlContent)
}

func (n *EmailNotifier) NotifyEditConflict(_ context.Context, notice EditConflictNotice) {
	if notice.Holder == nil || notice.Holder.Email == "" || notice.Article == nil {
		return
	}
	if notice.Requester != nil && notice.Requester.ID == notice.Holder.ID {
		return
	}
	if err := n.send(n.message(notice)); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send edit conflict notification for article %s", notice.Article.ID)
	}
}
