package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
)

// ── readJSON 测试 ──

func TestReadJSON_Decodes(t *testing.T) {
	h := &Handler{}

	var v struct {
		WeekStart string `json:"weekStart"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"weekStart":"2026-09-07"}`))
	if err := h.readJSON(r, &v); err != nil {
		t.Fatalf("readJSON 应成功: %v", err)
	}
	if v.WeekStart != "2026-09-07" {
		t.Errorf("期望 weekStart=2026-09-07，实际=%s", v.WeekStart)
	}
}

func TestReadJSON_RejectsUnknownFields(t *testing.T) {
	h := &Handler{}

	var v struct {
		WeekStart string `json:"weekStart"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"weekStart":"2026-09-07","bogus":1}`))
	if err := h.readJSON(r, &v); err == nil {
		t.Error("未知字段应解析失败")
	}
}

func TestReadJSON_RejectsTrailingData(t *testing.T) {
	h := &Handler{}

	var v struct {
		WeekStart string `json:"weekStart"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"weekStart":"2026-09-07"}{"weekStart":"2026-09-14"}`))
	if err := h.readJSON(r, &v); err == nil {
		t.Error("请求体中包含多个 JSON 值应解析失败")
	}
}
