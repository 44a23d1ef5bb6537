package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
)

func TestCreateQuipTrimsContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	user := seedUser(t, db, "alice_01")

	quip, err := svc.Create(user.ID, "  hello world  ", " a greeting ", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quip.Content != "hello world" {
		t.Fatalf("content not trimmed: %q", quip.Content)
	}
	if quip.Definition == nil || *quip.Definition != "a greeting" {
		t.Fatalf("definition not trimmed: %v", quip.Definition)
	}
	// Blank optional fields are stored as NULL, not empty strings.
	if quip.UsageExamples != nil {
		t.Fatalf("expected nil usage examples, got %q", *quip.UsageExamples)
	}
	if quip.User.Username != "alice_01" {
		t.Fatalf("author not loaded: %q", quip.User.Username)
	}
}

func TestCreateQuipRejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	user := seedUser(t, db, "alice_01")

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(user.ID, content, "", "")
		assertKind(t, err, apperr.KindValidation)
	}

	_, err := svc.Create(user.ID, strings.Repeat("x", 1001), "", "")
	assertKind(t, err, apperr.KindValidation)
}

func TestGetFeedOrderingAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	user := seedUser(t, db, "alice_01")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 45; i++ {
		seedQuip(t, db, user.ID, fmt.Sprintf("quip %02d", i), base.Add(time.Duration(i)*time.Second))
	}

	page1, err := svc.GetFeed("smart", 1, 20)
	if err != nil {
		t.Fatalf("feed page 1: %v", err)
	}
	if len(page1) != 20 {
		t.Fatalf("expected 20 quips, got %d", len(page1))
	}
	if page1[0].Content != "quip 44" {
		t.Fatalf("expected newest quip first, got %q", page1[0].Content)
	}
	for i := 1; i < len(page1); i++ {
		if page1[i].CreatedAt.After(page1[i-1].CreatedAt) {
			t.Fatalf("feed not in descending order at index %d", i)
		}
	}

	page2, err := svc.GetFeed("anything", 2, 20)
	if err != nil {
		t.Fatalf("feed page 2: %v", err)
	}
	if len(page2) != 20 {
		t.Fatalf("expected 20 quips on page 2, got %d", len(page2))
	}
	// Page 2 holds items 21-40 of the ordering.
	if page2[0].Content != "quip 24" {
		t.Fatalf("expected quip 24 first on page 2, got %q", page2[0].Content)
	}
	if page2[19].Content != "quip 05" {
		t.Fatalf("expected quip 05 last on page 2, got %q", page2[19].Content)
	}

	page3, err := svc.GetFeed("smart", 3, 20)
	if err != nil {
		t.Fatalf("feed page 3: %v", err)
	}
	if len(page3) != 5 {
		t.Fatalf("expected 5 quips on page 3, got %d", len(page3))
	}
}

func TestQuipUpToggleLaws(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	user := seedUser(t, db, "alice_01")
	quip := seedQuip(t, db, user.ID, "hello", time.Now().UTC())

	if n := svc.CountUps(quip.ID); n != 0 {
		t.Fatalf("expected 0 ups, got %d", n)
	}

	if err := svc.AddUp(user.ID, quip.ID); err != nil {
		t.Fatalf("first add up: %v", err)
	}
	if n := svc.CountUps(quip.ID); n != 1 {
		t.Fatalf("expected 1 up, got %d", n)
	}

	err := svc.AddUp(user.ID, quip.ID)
	appErr := assertKind(t, err, apperr.KindConflict)
	if appErr.Message != "Already upvoted" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}

	if err := svc.RemoveUp(user.ID, quip.ID); err != nil {
		t.Fatalf("remove up: %v", err)
	}
	if n := svc.CountUps(quip.ID); n != 0 {
		t.Fatalf("expected 0 ups after removal, got %d", n)
	}

	err = svc.RemoveUp(user.ID, quip.ID)
	appErr = assertKind(t, err, apperr.KindConflict)
	if appErr.Message != "Not upvoted" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestRepostToggleLaws(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	alice := seedUser(t, db, "alice_01")
	bob := seedUser(t, db, "bobby_01")
	quip := seedQuip(t, db, alice.ID, "hello", time.Now().UTC())

	if err := svc.AddRepost(bob.ID, quip.ID); err != nil {
		t.Fatalf("add repost: %v", err)
	}

	err := svc.AddRepost(bob.ID, quip.ID)
	appErr := assertKind(t, err, apperr.KindConflict)
	if appErr.Message != "Already reposted" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}

	if err := svc.RemoveRepost(bob.ID, quip.ID); err != nil {
		t.Fatalf("remove repost: %v", err)
	}

	err = svc.RemoveRepost(bob.ID, quip.ID)
	appErr = assertKind(t, err, apperr.KindConflict)
	if appErr.Message != "Not reposted" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestAddUpMissingQuip(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	user := seedUser(t, db, "alice_01")

	assertKind(t, svc.AddUp(user.ID, 9999), apperr.KindNotFound)
	assertKind(t, svc.AddRepost(user.ID, 9999), apperr.KindNotFound)
}

func TestDeleteQuipCascades(t *testing.T) {
	db := newTestDB(t)
	quips := NewQuipService(db, testLogger())
	comments := NewCommentService(db, testLogger())
	alice := seedUser(t, db, "alice_01")
	bob := seedUser(t, db, "bobby_01")
	quip := seedQuip(t, db, alice.ID, "hello", time.Now().UTC())

	top, err := comments.Create(bob.ID, quip.ID, "first!", nil)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := comments.Create(alice.ID, quip.ID, "thanks", &top.ID); err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if err := comments.AddUp(alice.ID, top.ID); err != nil {
		t.Fatalf("comment up: %v", err)
	}
	if err := quips.AddUp(bob.ID, quip.ID); err != nil {
		t.Fatalf("quip up: %v", err)
	}
	if err := quips.AddRepost(bob.ID, quip.ID); err != nil {
		t.Fatalf("repost: %v", err)
	}

	if err := quips.Delete(alice.ID, quip.ID); err != nil {
		t.Fatalf("delete quip: %v", err)
	}

	if _, found, err := quips.GetByID(quip.ID); err != nil || found {
		t.Fatalf("quip still present after delete (found=%v err=%v)", found, err)
	}
	var n int64
	db.Model(&models.Comment{}).Where("quip_id = ?", quip.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected 0 comments, got %d", n)
	}
	db.Model(&models.QuipUp{}).Where("quip_id = ?", quip.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected 0 quip ups, got %d", n)
	}
	db.Model(&models.Repost{}).Where("quip_id = ?", quip.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected 0 reposts, got %d", n)
	}
	db.Model(&models.CommentUp{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected 0 comment ups, got %d", n)
	}
}

func TestDeleteQuipAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	alice := seedUser(t, db, "alice_01")
	bob := seedUser(t, db, "bobby_01")
	quip := seedQuip(t, db, alice.ID, "hello", time.Now().UTC())

	assertKind(t, svc.Delete(bob.ID, quip.ID), apperr.KindAuthorization)

	if _, found, _ := svc.GetByID(quip.ID); !found {
		t.Fatalf("quip deleted by non-owner")
	}

	assertKind(t, svc.Delete(alice.ID, 9999), apperr.KindNotFound)
}

func TestGetUserQuipsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())

	_, err := svc.GetUserQuips("nobody_01", 1, 20)
	assertKind(t, err, apperr.KindNotFound)

	_, err = svc.GetUserReposts("nobody_01", 1, 20)
	assertKind(t, err, apperr.KindNotFound)
}

func TestGetUserRepostsOrderedByRepostTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	alice := seedUser(t, db, "alice_01")
	bob := seedUser(t, db, "bobby_01")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := seedQuip(t, db, alice.ID, "older quip", base)
	newer := seedQuip(t, db, alice.ID, "newer quip", base.Add(time.Hour))

	// Bob reposts the newer quip first, then the older one.
	if err := db.Create(&models.Repost{UserID: bob.ID, QuipID: newer.ID, CreatedAt: base.Add(2 * time.Hour)}).Error; err != nil {
		t.Fatalf("seed repost: %v", err)
	}
	if err := db.Create(&models.Repost{UserID: bob.ID, QuipID: older.ID, CreatedAt: base.Add(3 * time.Hour)}).Error; err != nil {
		t.Fatalf("seed repost: %v", err)
	}

	reposts, err := svc.GetUserReposts("bobby_01", 1, 20)
	if err != nil {
		t.Fatalf("get user reposts: %v", err)
	}
	if len(reposts) != 2 {
		t.Fatalf("expected 2 reposted quips, got %d", len(reposts))
	}
	if reposts[0].Content != "older quip" || reposts[1].Content != "newer quip" {
		t.Fatalf("reposts not ordered by repost time: %q, %q", reposts[0].Content, reposts[1].Content)
	}
}

func TestUserProfileStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuipService(db, testLogger())
	alice := seedUser(t, db, "alice_01")
	bob := seedUser(t, db, "bobby_01")
	carol := seedUser(t, db, "carol_01")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q1 := seedQuip(t, db, alice.ID, "one", base)
	q2 := seedQuip(t, db, alice.ID, "two", base.Add(time.Second))
	seedQuip(t, db, alice.ID, "three", base.Add(2*time.Second))

	for _, voter := range []int{bob.ID, carol.ID} {
		if err := svc.AddUp(voter, q2.ID); err != nil {
			t.Fatalf("add up: %v", err)
		}
	}
	if err := svc.AddUp(bob.ID, q1.ID); err != nil {
		t.Fatalf("add up: %v", err)
	}
	if err := svc.AddRepost(bob.ID, q1.ID); err != nil {
		t.Fatalf("add repost: %v", err)
	}

	totalQuips, totalUps, totalReposts, top, err := svc.UserProfileStats(alice.ID, 3)
	if err != nil {
		t.Fatalf("profile stats: %v", err)
	}
	if totalQuips != 3 || totalUps != 3 || totalReposts != 1 {
		t.Fatalf("unexpected totals: quips=%d ups=%d reposts=%d", totalQuips, totalUps, totalReposts)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 top quips, got %d", len(top))
	}
	if top[0].Quip.ID != q2.ID || top[0].Ups != 2 {
		t.Fatalf("expected q2 with 2 ups on top, got quip %d with %d", top[0].Quip.ID, top[0].Ups)
	}
}
