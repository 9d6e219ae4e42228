package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

func TestDiscussionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewDiscussionService(db)
	author := seedUser(t, db, models.UserTypeStudent, "Asha")
	other := seedUser(t, db, models.UserTypeStudent, "Ravi")

	d, err := svc.Create(ctx, author.ID, &dtos.DiscussionRequest{
		Title:   "UPSC prep",
		Content: "How do you plan the syllabus?",
		Tags:    []string{" UPSC ", "upsc", "Strategy"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Category != "general" {
		t.Fatalf("expected default category, got %q", d.Category)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "upsc" || d.Tags[1] != "strategy" {
		t.Fatalf("expected normalised tags, got %v", d.Tags)
	}

	for i := 1; i <= 2; i++ {
		got, _, err := svc.Get(ctx, d.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Views != i {
			t.Fatalf("expected %d views, got %d", i, got.Views)
		}
	}

	title := "Edited"
	_, err = svc.Update(ctx, other.ID, d.ID, &dtos.DiscussionUpdateRequest{Title: &title})
	expectKind(t, err, apperr.KindNotFound, "Discussion not found or unauthorized")
	updated, err := svc.Update(ctx, author.ID, d.ID, &dtos.DiscussionUpdateRequest{Title: &title})
	if err != nil || updated.Title != "Edited" {
		t.Fatalf("author update failed: %v", err)
	}

	reply, err := svc.Reply(ctx, other.ID, d.ID, "Start with NCERTs")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	liked, count, err := svc.ToggleReplyLike(ctx, author.ID, d.ID, reply.ID)
	if err != nil || !liked || count != 1 {
		t.Fatalf("reply like: liked=%v count=%d err=%v", liked, count, err)
	}
	_, _, err = svc.ToggleReplyLike(ctx, author.ID, "other-discussion", reply.ID)
	expectKind(t, err, apperr.KindNotFound, "Reply not found")

	liked, count, err = svc.ToggleLike(ctx, other.ID, d.ID)
	if err != nil || !liked || count != 1 {
		t.Fatalf("like: liked=%v count=%d err=%v", liked, count, err)
	}

	got, likers, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	detail := dtos.NewDiscussionDetail(got, likers)
	if detail.Replies != 1 || len(detail.ReplyList) != 1 || detail.ReplyList[0].Likes != 1 {
		t.Fatalf("unexpected replies %+v", detail.ReplyList)
	}
	if len(detail.LikedBy) != 1 || detail.LikedBy[0].Name != "Ravi" {
		t.Fatalf("unexpected likers %+v", detail.LikedBy)
	}

	err = svc.Delete(ctx, other.ID, d.ID, false)
	expectKind(t, err, apperr.KindNotFound, "Discussion not found or unauthorized")
	if err := svc.Delete(ctx, other.ID, d.ID, true); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
	var replies, replyLikes int64
	db.Model(&models.DiscussionReply{}).Count(&replies)
	db.Model(&models.ReplyLike{}).Count(&replyLikes)
	if replies != 0 || replyLikes != 0 {
		t.Fatalf("expected cascade, got %d replies and %d reply likes", replies, replyLikes)
	}
	_, _, err = svc.Get(ctx, d.ID)
	expectKind(t, err, apperr.KindNotFound, "Discussion not found")
}

func TestLockedDiscussionRejectsReplies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewDiscussionService(db)
	author := seedUser(t, db, models.UserTypeStudent, "Asha")

	d, err := svc.Create(ctx, author.ID, &dtos.DiscussionRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	locked := true
	if _, err := svc.Moderate(ctx, d.ID, &dtos.ModerationRequest{IsLocked: &locked}); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	_, err = svc.Reply(ctx, author.ID, d.ID, "hello")
	expectKind(t, err, apperr.KindForbidden, "Discussion is locked")

	_, err = svc.Reply(ctx, author.ID, "missing", "hello")
	expectKind(t, err, apperr.KindNotFound, "Discussion not found")

	_, err = svc.Moderate(ctx, d.ID, &dtos.ModerationRequest{})
	expectKind(t, err, apperr.KindValidation, "Nothing to update")
}

func TestListDiscussionsPinnedFirstWithFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewDiscussionService(db)
	author := seedUser(t, db, models.UserTypeStudent, "Asha")

	mk := func(title, category string, tags ...string) *models.Discussion {
		d, err := svc.Create(ctx, author.ID, &dtos.DiscussionRequest{Title: title, Content: "body of " + title, Category: category, Tags: tags})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return d
	}
	pinned := mk("Pinned rules", "general")
	mk("SSC CGL tips", "jobs", "ssc")
	mk("Interview stories", "career-advice", "interview", "ssc")

	yes := true
	if _, err := svc.Moderate(ctx, pinned.ID, &dtos.ModerationRequest{IsPinned: &yes}); err != nil {
		t.Fatalf("pin: %v", err)
	}

	all, _, total, err := svc.List(ctx, DiscussionFilter{}, NewPage(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || all[0].ID != pinned.ID {
		t.Fatalf("expected pinned first of 3, got total=%d first=%q", total, all[0].Title)
	}

	_, _, total, _ = svc.List(ctx, DiscussionFilter{Category: "jobs"}, NewPage(1, 10))
	if total != 1 {
		t.Fatalf("expected 1 in category, got %d", total)
	}
	_, _, total, _ = svc.List(ctx, DiscussionFilter{Tag: "SSC"}, NewPage(1, 10))
	if total != 2 {
		t.Fatalf("expected 2 tagged ssc, got %d", total)
	}
	_, _, total, _ = svc.List(ctx, DiscussionFilter{Search: "STORIES"}, NewPage(1, 10))
	if total != 1 {
		t.Fatalf("expected case-insensitive search hit, got %d", total)
	}
}
