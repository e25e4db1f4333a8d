package ordersync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"SquareBridge/pkg/correlation"
)

var ErrMissingOrderID = errors.New("order.created event without order id")

type Outcome string

const (
	OutcomeIgnored      Outcome = "ignored"
	OutcomeOrderMissing Outcome = "order_missing"
	OutcomeSynced       Outcome = "synced"
)

type Result struct {
	Outcome Outcome
	Synced  SyncedOrder
}

type Service struct {
	payments   PaymentsGateway
	crm        CRMGateway
	index      SyncIndex
	contactTag string
	now        func() time.Time
}

type Option func(*Service)

// WithIndex enables indexing of synced orders.
func WithIndex(index SyncIndex) Option {
	return func(s *Service) {
		s.index = index
	}
}

func NewService(payments PaymentsGateway, crm CRMGateway, contactTag string, opts ...Option) *Service {
	s := &Service{
		payments:   payments,
		crm:        crm,
		contactTag: contactTag,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessEvent runs the order.created flow: fetch order, create the CRM order
// record, then sync the customer when the order references one.
//
// Only a failed order fetch is returned as an error. Everything after it is
// best effort: CRM and customer failures are logged and swallowed, and
// nothing is deduplicated, so a redelivered event creates new CRM records.
func (s *Service) ProcessEvent(ctx context.Context, event Event) (Result, error) {
	if !event.IsOrderCreated() {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	orderID := event.OrderID()
	if orderID == "" {
		return Result{Outcome: OutcomeIgnored}, ErrMissingOrderID
	}

	ctx = correlation.WithMerchant(ctx, event.MerchantID)
	log := slog.With("order_id", orderID, "event_id", event.EventID)

	order, err := s.payments.GetOrder(ctx, orderID)
	if err != nil {
		return Result{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil {
		log.WarnContext(ctx, "No full order data returned")
		return Result{Outcome: OutcomeOrderMissing}, nil
	}

	record := NewOrderRecord(*order)
	synced := SyncedOrder{
		OrderID:    orderID,
		MerchantID: event.MerchantID,
		EventID:    event.EventID,
		Record:     record,
	}

	recordID, err := s.crm.CreateOrderRecord(ctx, record)
	if err != nil {
		log.ErrorContext(ctx, "CRM order record creation failed", slog.Any("error", err))
	} else {
		synced.RecordID = recordID
		log.InfoContext(ctx, "CRM order record created", "record_id", recordID)
	}

	if order.CustomerID != "" {
		s.syncCustomer(ctx, log, order.CustomerID, &synced)
	} else {
		log.WarnContext(ctx, "No customer_id found in full order details")
	}

	synced.SyncedAt = s.now().UTC()
	if s.index != nil && synced.RecordID != "" {
		if err := s.index.IndexSyncedOrder(ctx, synced); err != nil {
			log.ErrorContext(ctx, "Index synced order failed", slog.Any("error", err))
		}
	}

	return Result{Outcome: OutcomeSynced, Synced: synced}, nil
}

func (s *Service) syncCustomer(ctx context.Context, log *slog.Logger, customerID string, synced *SyncedOrder) {
	log = log.With("customer_id", customerID)

	customer, err := s.payments.GetCustomer(ctx, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Fetch customer failed", slog.Any("error", err))
		return
	}
	if customer == nil {
		log.WarnContext(ctx, "No customer data returned")
		return
	}

	contactID, err := s.crm.CreateContact(ctx, NewContact(*customer, s.contactTag))
	if err != nil {
		log.ErrorContext(ctx, "CRM contact creation failed", slog.Any("error", err))
		return
	}
	synced.ContactID = contactID
	log.InfoContext(ctx, "CRM contact created", "contact_id", contactID)

	if contactID == "" || synced.RecordID == "" {
		log.WarnContext(ctx, "Skipping association, missing record id",
			"contact_id", contactID, "record_id", synced.RecordID)
		return
	}

	err = s.crm.CreateAssociation(ctx, Association{ContactID: contactID, OrderRecordID: synced.RecordID})
	if err != nil {
		log.ErrorContext(ctx, "CRM association creation failed", slog.Any("error", err))
		return
	}
	synced.Associated = true
	log.InfoContext(ctx, "CRM contact linked to order record", "record_id", synced.RecordID)
}
