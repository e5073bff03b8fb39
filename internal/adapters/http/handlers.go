package httpadapter

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"reactivation/internal/api"
	"reactivation/internal/domain"
	"reactivation/internal/services/campaign"
)

const (
	defaultReportDays = 30
	maxBodyBytes      = 1 << 20
	cancelledReason   = "cancelled by operator"
)

func reportDays(days *api.Days) int {
	if days == nil {
		return defaultReportDays
	}
	return *days
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) GetHealthz(context.Context, api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) RunCampaign(context.Context, api.RunCampaignRequestObject) (api.RunCampaignResponseObject, error) {
	res, err := s.deps.Campaign.RunDaily(s.base)
	if err != nil {
		return nil, err
	}
	return api.RunCampaign200JSONResponse(res), nil
}

func (s *Server) GetScoring(ctx context.Context, _ api.GetScoringRequestObject) (api.GetScoringResponseObject, error) {
	summary, err := s.deps.Campaign.ScorePopulation(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetScoring200JSONResponse(summary), nil
}

func (s *Server) GetLatestBatch(ctx context.Context, _ api.GetLatestBatchRequestObject) (api.GetLatestBatchResponseObject, error) {
	b, err := s.deps.Campaign.LatestBatch(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetLatestBatch200JSONResponse(b), nil
}

func (s *Server) GetBatch(ctx context.Context, req api.GetBatchRequestObject) (api.GetBatchResponseObject, error) {
	b, err := s.deps.Campaign.Batch(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetBatch200JSONResponse(b), nil
}

// ApproveBatch releases the listed items. A missing body or approvals key
// approves the whole batch; an explicit empty list approves nothing and
// closes the batch.
func (s *Server) ApproveBatch(ctx context.Context, req api.ApproveBatchRequestObject) (api.ApproveBatchResponseObject, error) {
	var approvals []campaign.Approval
	if req.Body == nil || req.Body.Approvals == nil {
		b, err := s.deps.Campaign.Batch(ctx, req.Id)
		if err != nil {
			return nil, err
		}
		approvals = campaign.ApproveAll(b)
	} else {
		approvals = *req.Body.Approvals
	}
	res, err := s.deps.Campaign.Approve(s.base, req.Id, approvals)
	if err != nil {
		return nil, err
	}
	return api.ApproveBatch200JSONResponse(res), nil
}

func (s *Server) PreviewSequence(ctx context.Context, req api.PreviewSequenceRequestObject) (api.PreviewSequenceResponseObject, error) {
	preview, err := s.deps.Campaign.PreviewSequence(ctx, req.Id, req.Phone)
	if err != nil {
		return nil, err
	}
	return api.PreviewSequence200JSONResponse(preview), nil
}

func (s *Server) GetScheduler(context.Context, api.GetSchedulerRequestObject) (api.GetSchedulerResponseObject, error) {
	return api.GetScheduler200JSONResponse(s.deps.Scheduler.Status()), nil
}

func (s *Server) StartScheduler(context.Context, api.StartSchedulerRequestObject) (api.StartSchedulerResponseObject, error) {
	s.deps.Scheduler.Start(s.base)
	return api.StartScheduler200JSONResponse(s.deps.Scheduler.Status()), nil
}

func (s *Server) StopScheduler(context.Context, api.StopSchedulerRequestObject) (api.StopSchedulerResponseObject, error) {
	s.deps.Scheduler.Stop()
	return api.StopScheduler200JSONResponse(s.deps.Scheduler.Status()), nil
}

func (s *Server) ListSequences(ctx context.Context, req api.ListSequencesRequestObject) (api.ListSequencesResponseObject, error) {
	filter := domain.Stage(strings.ToUpper(deref(req.Params.Stage)))
	seqs, err := s.deps.Campaign.ListSequences(ctx, filter)
	if err != nil {
		return nil, err
	}
	return api.ListSequences200JSONResponse(seqs), nil
}

func (s *Server) CancelSequence(ctx context.Context, req api.CancelSequenceRequestObject) (api.CancelSequenceResponseObject, error) {
	reason := cancelledReason
	if req.Body != nil && deref(req.Body.Reason) != "" {
		reason = *req.Body.Reason
	}
	if err := s.deps.Campaign.CancelSequence(ctx, req.Phone, reason); err != nil {
		return nil, err
	}
	return api.CancelSequence204Response{}, nil
}

func (s *Server) RunFollowups(context.Context, api.RunFollowupsRequestObject) (api.RunFollowupsResponseObject, error) {
	res, err := s.deps.Campaign.RunDueStages(s.base)
	if err != nil {
		return nil, err
	}
	return api.RunFollowups200JSONResponse(res), nil
}

func (s *Server) ReceiveInbound(ctx context.Context, req api.ReceiveInboundRequestObject) (api.ReceiveInboundResponseObject, error) {
	in, ok := req.Body.Inbound()
	if !ok {
		return api.ReceiveInbound202JSONResponse{Status: "ignored"}, nil
	}
	reply, err := s.deps.Replies.Ingest(ctx, in)
	if err != nil {
		return nil, err
	}
	return api.ReceiveInbound200JSONResponse(reply), nil
}

func (s *Server) ListBlacklist(ctx context.Context, _ api.ListBlacklistRequestObject) (api.ListBlacklistResponseObject, error) {
	entries, err := s.deps.Blacklist.Blacklist(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListBlacklist200JSONResponse(entries), nil
}

func (s *Server) AddBlacklist(ctx context.Context, req api.AddBlacklistRequestObject) (api.AddBlacklistResponseObject, error) {
	entry, err := s.deps.Blacklist.AddToBlacklist(ctx, req.Body.Phone, deref(req.Body.Reason))
	if err != nil {
		return nil, err
	}
	return api.AddBlacklist200JSONResponse(entry), nil
}

func (s *Server) RemoveBlacklist(ctx context.Context, req api.RemoveBlacklistRequestObject) (api.RemoveBlacklistResponseObject, error) {
	removed, err := s.deps.Blacklist.RemoveFromBlacklist(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	return api.RemoveBlacklist200JSONResponse{Removed: removed}, nil
}

func (s *Server) RecordConversion(ctx context.Context, req api.RecordConversionRequestObject) (api.RecordConversionResponseObject, error) {
	conv, err := s.deps.Ledger.RecordConversion(ctx, *req.Body)
	if err != nil {
		return nil, err
	}
	s.log.Info("conversion recorded", zap.String("phone", conv.Phone), zap.String("value", conv.Value.StringFixed(2)))
	return api.RecordConversion201JSONResponse(conv), nil
}

func (s *Server) ListLeads(ctx context.Context, _ api.ListLeadsRequestObject) (api.ListLeadsResponseObject, error) {
	leads, err := s.deps.Ledger.PendingLeads(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListLeads200JSONResponse(leads), nil
}

func (s *Server) MarkLeadContacted(ctx context.Context, req api.MarkLeadContactedRequestObject) (api.MarkLeadContactedResponseObject, error) {
	var notes string
	if req.Body != nil {
		notes = deref(req.Body.Notes)
	}
	lead, err := s.deps.Ledger.MarkContacted(ctx, req.Phone, notes)
	if err != nil {
		return nil, err
	}
	return api.MarkLeadContacted200JSONResponse(lead), nil
}

func (s *Server) GetOutreachHistory(ctx context.Context, req api.GetOutreachHistoryRequestObject) (api.GetOutreachHistoryResponseObject, error) {
	recs, err := s.deps.Ledger.History(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	return api.GetOutreachHistory200JSONResponse(recs), nil
}

func (s *Server) ListExperiments(ctx context.Context, _ api.ListExperimentsRequestObject) (api.ListExperimentsResponseObject, error) {
	exps, err := s.deps.Experiments.List(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListExperiments200JSONResponse(exps), nil
}

func (s *Server) CreateExperiment(ctx context.Context, req api.CreateExperimentRequestObject) (api.CreateExperimentResponseObject, error) {
	exp, err := s.deps.Experiments.CreateExperiment(ctx, *req.Body)
	if err != nil {
		return nil, err
	}
	return api.CreateExperiment201JSONResponse(exp), nil
}

func (s *Server) GetExperiment(ctx context.Context, req api.GetExperimentRequestObject) (api.GetExperimentResponseObject, error) {
	exp, err := s.deps.Experiments.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetExperiment200JSONResponse(exp), nil
}

func (s *Server) GetExperimentReport(ctx context.Context, req api.GetExperimentReportRequestObject) (api.GetExperimentReportResponseObject, error) {
	rep, err := s.deps.Experiments.Report(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetExperimentReport200JSONResponse(rep), nil
}

func (s *Server) FinalizeExperiment(ctx context.Context, req api.FinalizeExperimentRequestObject) (api.FinalizeExperimentResponseObject, error) {
	res, err := s.deps.Experiments.Finalize(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.FinalizeExperiment200JSONResponse(res), nil
}

func (s *Server) GetHistoryReport(ctx context.Context, req api.GetHistoryReportRequestObject) (api.GetHistoryReportResponseObject, error) {
	h, err := s.deps.Reports.OutreachHistory(ctx, reportDays(req.Params.Days))
	if err != nil {
		return nil, err
	}
	return api.GetHistoryReport200JSONResponse(h), nil
}

func (s *Server) GetReplyReport(ctx context.Context, req api.GetReplyReportRequestObject) (api.GetReplyReportResponseObject, error) {
	st, err := s.deps.Reports.ReplyStats(ctx, reportDays(req.Params.Days))
	if err != nil {
		return nil, err
	}
	return api.GetReplyReport200JSONResponse(st), nil
}

func (s *Server) GetConversionReport(ctx context.Context, req api.GetConversionReportRequestObject) (api.GetConversionReportResponseObject, error) {
	st, err := s.deps.Reports.ConversionStats(ctx, reportDays(req.Params.Days))
	if err != nil {
		return nil, err
	}
	return api.GetConversionReport200JSONResponse(st), nil
}

func (s *Server) GetPerformanceReport(ctx context.Context, req api.GetPerformanceReportRequestObject) (api.GetPerformanceReportResponseObject, error) {
	p, err := s.deps.Reports.RecentPerformance(ctx, reportDays(req.Params.Days))
	if err != nil {
		return nil, err
	}
	return api.GetPerformanceReport200JSONResponse(p), nil
}

func (s *Server) GetInactivityReport(ctx context.Context, _ api.GetInactivityReportRequestObject) (api.GetInactivityReportResponseObject, error) {
	rep, err := s.deps.Reports.Inactivity(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetInactivityReport200JSONResponse(rep), nil
}

func (s *Server) GetInactivitySegment(ctx context.Context, req api.GetInactivitySegmentRequestObject) (api.GetInactivitySegmentResponseObject, error) {
	g, err := s.deps.Reports.InactivitySegment(ctx, req.Segment)
	if err != nil {
		return nil, err
	}
	return api.GetInactivitySegment200JSONResponse(g), nil
}

func (s *Server) GetRecentExits(ctx context.Context, req api.GetRecentExitsRequestObject) (api.GetRecentExitsResponseObject, error) {
	out, err := s.deps.Reports.RecentExits(ctx, reportDays(req.Params.Days))
	if err != nil {
		return nil, err
	}
	return api.GetRecentExits200JSONResponse(out), nil
}

func (s *Server) GetChurnTrend(ctx context.Context, _ api.GetChurnTrendRequestObject) (api.GetChurnTrendResponseObject, error) {
	tr, err := s.deps.Reports.ChurnTrend(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetChurnTrend200JSONResponse(tr), nil
}
