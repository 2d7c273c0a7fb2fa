package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/blogicum-next/internal/config"
)

func TestBuildCommentNotificationContent(t *testing.T) {
	input := CommentNotificationInput{
		PostTitle:     "川西环线七日记",
		CommentAuthor: "demo",
		CommentText:   "收藏了",
	}

	subject, body := buildCommentNotificationContent(input, "zh-CN")
	if !strings.Contains(subject, "川西环线七日记") {
		t.Fatalf("zh subject missing title: %q", subject)
	}
	if !strings.Contains(body, "demo") || !strings.Contains(body, "收藏了") {
		t.Fatalf("zh body missing fields: %q", body)
	}

	subject, body = buildCommentNotificationContent(input, "en-US")
	if !strings.HasPrefix(subject, "New comment on") {
		t.Fatalf("en subject wrong: %q", subject)
	}
	if !strings.Contains(body, "commented on your post") {
		t.Fatalf("en body wrong: %q", body)
	}

	// 超长评论截断
	long := CommentNotificationInput{PostTitle: "t", CommentAuthor: "a", CommentText: strings.Repeat("字", 300)}
	_, body = buildCommentNotificationContent(long, "zh-CN")
	if !strings.Contains(body, "…") {
		t.Fatalf("long comment should be truncated")
	}
	if strings.Count(body, "字") > 200 {
		t.Fatalf("excerpt want at most 200 runes, got %d", strings.Count(body, "字"))
	}
}

func TestSendCommentNotificationDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendCommentNotification("a@b.com", CommentNotificationInput{}, "")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("want ErrEmailServiceDisabled, got %v", err)
	}

	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	err = svc.SendCommentNotification("a@b.com", CommentNotificationInput{}, "")
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("noreply@example.com", ""); got != "noreply@example.com" {
		t.Fatalf("bare from want unchanged, got %q", got)
	}
	got := buildFromAddress("noreply@example.com", "博客通知")
	if !strings.Contains(got, "<noreply@example.com>") {
		t.Fatalf("named from should contain address, got %q", got)
	}
}
