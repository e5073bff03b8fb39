// Package ledger records approaches and conversions and keeps the hot-lead
// list the sales team works from.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

const (
	ChannelWhatsApp    = "whatsapp"
	SourceReactivation = "REATIVACAO"
)

// ConversionRecorder credits a conversion to an experiment variant.
type ConversionRecorder interface {
	RecordConversion(ctx context.Context, variantID string, revenue decimal.Decimal) error
}

type Service struct {
	outreach    ports.OutreachRepository
	conversions ports.ConversionRepository
	leads       ports.LeadRepository
	experiments ConversionRecorder
	events      ports.EventPublisher
	clock       clockwork.Clock
	log         *zap.Logger
}

func New(outreach ports.OutreachRepository, conversions ports.ConversionRepository, leads ports.LeadRepository,
	experiments ConversionRecorder, events ports.EventPublisher, clock clockwork.Clock, log *zap.Logger) *Service {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &Service{
		outreach:    outreach,
		conversions: conversions,
		leads:       leads,
		experiments: experiments,
		events:      events,
		clock:       clock,
		log:         log,
	}
}

// RecordAttempt appends one approach. ID, time and channel are filled in
// when empty.
func (s *Service) RecordAttempt(ctx context.Context, rec domain.OutreachRecord) (domain.OutreachRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = s.clock.Now()
	}
	if rec.Channel == "" {
		rec.Channel = ChannelWhatsApp
	}
	if rec.Outcome == "" {
		rec.Outcome = domain.OutcomeSent
	}
	if err := s.outreach.AppendOutreach(ctx, rec); err != nil {
		return domain.OutreachRecord{}, fmt.Errorf("append outreach for %s: %w", rec.Phone, err)
	}
	if err := s.events.Publish(ctx, ports.EventOutreach, rec.Phone, rec); err != nil {
		s.log.Warn("publish outreach event failed", zap.String("phone", rec.Phone), zap.Error(err))
	}
	return rec, nil
}

func (s *Service) UpdateOutcome(ctx context.Context, id string, outcome domain.Outcome) error {
	return s.outreach.UpdateOutreachOutcome(ctx, id, outcome)
}

func (s *Service) History(ctx context.Context, phone string) ([]domain.OutreachRecord, error) {
	return s.outreach.OutreachByPhone(ctx, domain.NormalizePhone(phone))
}

// ConversionInput is what the front desk reports when a member comes back.
type ConversionInput struct {
	Phone  string          `json:"phone"`
	Name   string          `json:"name"`
	Plan   string          `json:"plan"`
	Value  decimal.Decimal `json:"value"`
	Source string          `json:"source"`
	// VariantID overrides the variant found on the last approach.
	VariantID string `json:"variantId"`
}

// RecordConversion stores the conversion correlated with the member's most
// recent approach and credits the experiment variant that approach used.
// A closed experiment does not block the conversion itself.
func (s *Service) RecordConversion(ctx context.Context, in ConversionInput) (domain.Conversion, error) {
	phone, err := domain.ParsePhone(in.Phone)
	if err != nil {
		return domain.Conversion{}, err
	}
	if in.Value.IsNegative() {
		return domain.Conversion{}, fmt.Errorf("%w: conversion value must not be negative", domain.ErrInvalidInput)
	}
	now := s.clock.Now()
	conv := domain.Conversion{
		ID:        uuid.NewString(),
		Phone:     phone,
		Name:      strings.TrimSpace(in.Name),
		Plan:      in.Plan,
		Value:     in.Value,
		At:        now,
		Source:    in.Source,
		VariantID: in.VariantID,
	}
	if conv.Source == "" {
		conv.Source = SourceReactivation
	}

	history, err := s.outreach.OutreachByPhone(ctx, phone)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("load outreach history: %w", err)
	}
	var last *domain.OutreachRecord
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Outcome.Delivered() {
			last = &history[i]
			break
		}
	}
	if last != nil {
		conv.Score = last.Score
		conv.Template = last.Template
		conv.Offer = last.Offer
		conv.DaysToConvert = int(now.Sub(last.At).Hours() / 24)
		if conv.VariantID == "" {
			conv.VariantID = last.VariantID
		}
		if conv.Name == "" {
			conv.Name = last.Name
		}
	}

	if err := s.conversions.AppendConversion(ctx, conv); err != nil {
		return domain.Conversion{}, fmt.Errorf("append conversion: %w", err)
	}
	log := s.log.With(zap.String("phone", phone))
	log.Info("conversion recorded", zap.String("plan", conv.Plan), zap.String("value", conv.Value.StringFixed(2)))

	if last != nil {
		if err := s.outreach.UpdateOutreachOutcome(ctx, last.ID, domain.OutcomeConverted); err != nil {
			log.Error("mark outreach converted failed", zap.Error(err))
		}
	}
	if conv.VariantID != "" && s.experiments != nil {
		err := s.experiments.RecordConversion(ctx, conv.VariantID, conv.Value)
		switch {
		case errors.Is(err, domain.ErrExperimentFinalized):
			log.Info("experiment closed, conversion not credited", zap.String("variant_id", conv.VariantID))
		case err != nil:
			log.Error("credit experiment conversion failed", zap.Error(err))
		}
	}
	if lead, found, err := s.leads.GetLead(ctx, phone); err == nil && found {
		lead.Status = domain.LeadConverted
		lead.UpdatedAt = now
		if err := s.leads.UpsertLead(ctx, lead); err != nil {
			log.Error("mark lead converted failed", zap.Error(err))
		}
	}
	if err := s.events.Publish(ctx, ports.EventConversion, phone, conv); err != nil {
		log.Warn("publish conversion event failed", zap.Error(err))
	}
	return conv, nil
}

// PendingLeads lists interested members still waiting for a human.
func (s *Service) PendingLeads(ctx context.Context) ([]domain.HotLead, error) {
	return s.leads.ListLeads(ctx, domain.LeadPending)
}

// MarkContacted records that a human followed up with the lead.
func (s *Service) MarkContacted(ctx context.Context, phone, notes string) (domain.HotLead, error) {
	phone = domain.NormalizePhone(phone)
	lead, found, err := s.leads.GetLead(ctx, phone)
	if err != nil {
		return domain.HotLead{}, err
	}
	if !found {
		return domain.HotLead{}, fmt.Errorf("lead %s: %w", phone, domain.ErrNotFound)
	}
	lead.Status = domain.LeadContacted
	lead.Notes = notes
	lead.UpdatedAt = s.clock.Now()
	if err := s.leads.UpsertLead(ctx, lead); err != nil {
		return domain.HotLead{}, fmt.Errorf("update lead %s: %w", phone, err)
	}
	return lead, nil
}
