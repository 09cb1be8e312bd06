package service

import (
	"context"
	"errors"
	"log"
	"time"

	"zamanat_backend/internals/features/notifications/email"
	"zamanat_backend/internals/features/notifications/whatsapp"
	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
	"zamanat_backend/internals/helpers/storage"
)

const DefaultCourseName = "Full Stack Web Development"

// FolderCreator lays out the Step folders for a user's course.
type FolderCreator interface {
	InitializeCourseFolders(userName, courseName string, modules int) (string, error)
}

type DiskFolders struct {
	Root string
}

func (d DiskFolders) InitializeCourseFolders(userName, courseName string, modules int) (string, error) {
	return storage.InitializeCourseFolders(d.Root, userName, courseName, modules)
}

// Provisioner runs the one-time setup after a confirmed payment.
// Every step is best-effort: failures are logged and never reach the caller.
type Provisioner struct {
	Directory          repository.Directory
	Folders            FolderCreator
	Mailer             email.Mailer
	Messenger          whatsapp.Sender
	DefaultModuleCount int
	Timeout            time.Duration
}

func (p *Provisioner) Provision(ctx context.Context, order model.PaymentOrderModel) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// detached so a client hanging up mid-request does not cut provisioning short
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	orderID := order.PaymentOrderMerchantOrderID
	contact := p.contact(ctx, order)
	course := p.course(ctx, order)

	p.run(orderID, "folders", func() error {
		if p.Folders == nil {
			return errors.New("no folder creator configured")
		}
		dir, err := p.Folders.InitializeCourseFolders(contact.Name, course.Title, course.ModuleCount)
		if err != nil {
			return err
		}
		log.Printf("[PROVISION] 📁 folders ready order=%s dir=%s", orderID, dir)
		return nil
	})

	p.run(orderID, "receipt email", func() error {
		if p.Mailer == nil {
			return errors.New("no mailer configured")
		}
		if contact.Email == "" {
			return errors.New("user has no email")
		}
		paidAt := order.PaymentOrderUpdatedAt
		if paidAt.IsZero() {
			paidAt = time.Now()
		}
		msg, err := email.ReceiptMessage(email.Address{Name: contact.Name, Email: contact.Email}, email.Receipt{
			OrderID:    orderID,
			CourseName: course.Title,
			Amount:     order.PaymentOrderAmount,
			PaidAt:     paidAt,
		})
		if err != nil {
			return err
		}
		return p.Mailer.Send(ctx, msg)
	})

	p.run(orderID, "whatsapp", func() error {
		if contact.Phone == "" || p.Messenger == nil {
			return nil
		}
		err := p.Messenger.SendText(ctx, contact.Phone, whatsapp.EnrollmentText(contact.Name, course.Title))
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			log.Printf("[PROVISION] whatsapp skipped order=%s: credentials missing", orderID)
			return nil
		}
		return err
	})
}

func (p *Provisioner) contact(ctx context.Context, order model.PaymentOrderModel) repository.UserContact {
	fallback := repository.UserContact{Name: order.PaymentOrderUserID.String()}
	if p.Directory == nil {
		return fallback
	}
	c, err := p.Directory.UserContact(ctx, order.PaymentOrderUserID)
	if err != nil {
		log.Printf("[PROVISION] ⚠️ user lookup failed order=%s: %v", order.PaymentOrderMerchantOrderID, err)
		return fallback
	}
	if c.Name == "" {
		c.Name = fallback.Name
	}
	return c
}

func (p *Provisioner) course(ctx context.Context, order model.PaymentOrderModel) repository.CourseInfo {
	info := repository.CourseInfo{Title: DefaultCourseName}
	if p.Directory != nil && order.PaymentOrderCourseID != nil {
		found, err := p.Directory.CourseInfo(ctx, *order.PaymentOrderCourseID)
		switch {
		case err == nil:
			info = found
		case !errors.Is(err, repository.ErrCourseNotFound):
			log.Printf("[PROVISION] ⚠️ course lookup failed order=%s: %v", order.PaymentOrderMerchantOrderID, err)
		}
	}
	if info.ModuleCount <= 0 {
		info.ModuleCount = p.DefaultModuleCount
	}
	if info.ModuleCount <= 0 {
		info.ModuleCount = 6
	}
	return info
}

func (p *Provisioner) run(orderID, step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PROVISION] ❌ %s panicked order=%s: %v", step, orderID, r)
		}
	}()
	if err := fn(); err != nil {
		log.Printf("[PROVISION] ❌ %s failed order=%s: %v", step, orderID, err)
		return
	}
	log.Printf("[PROVISION] ✅ %s done order=%s", step, orderID)
}
