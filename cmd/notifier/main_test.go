package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"path/filepath"
	"strings"
	"testing"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// roundTrip 模拟消息经过队列后的形态：
// 结构体经过 JSON 序列化再反序列化后，模板拿到的是 map
func roundTrip(t *testing.T, data any) any {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("序列化通知数据失败: %v", err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("反序列化通知数据失败: %v", err)
	}
	return decoded
}

// ── 邮件模板测试 ──

func TestNotificationTemplates_Render(t *testing.T) {
	cases := map[string]any{
		"create_employee": domain.CreateEmployeeNotificationData{
			FullName: "王师傅",
			Username: "wangshifu",
			Password: "Abc123!@#",
		},
		"reset_password": domain.ResetPasswordNotificationData{
			FullName:   "王师傅",
			OTP:        "834920",
			Expiration: 5,
		},
		"substitution_decided": domain.SubstitutionDecidedNotificationData{
			FullName:     "李阿姨",
			Decision:     "已批准",
			ResponseNote: "辛苦了",
			WeekStart:    "2026-09-07",
			Weekday:      "周三",
			ShiftType:    "午市",
		},
		"schedule_published": domain.SchedulePublishedNotificationData{
			FullName:  "王师傅",
			WeekStart: "2026-09-07",
			ShiftsNum: 4,
		},
	}

	for messageType, data := range cases {
		tmplInfo, ok := notificationTemplates[messageType]
		if !ok {
			t.Errorf("通知类型 %s 没有对应的邮件模板", messageType)
			continue
		}

		// 模板路径相对于运行目录，测试运行目录是 cmd/notifier
		path := filepath.Join("..", "..", strings.TrimPrefix(tmplInfo.file, "./"))
		tmpl, err := template.ParseFiles(path)
		if err != nil {
			t.Errorf("通知类型 %s 的邮件模板解析失败: %v", messageType, err)
			continue
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, roundTrip(t, data)); err != nil {
			t.Errorf("通知类型 %s 的邮件模板渲染失败: %v", messageType, err)
			continue
		}
		if !strings.Contains(buf.String(), "餐厅排班系统") {
			t.Errorf("通知类型 %s 渲染出的邮件正文不完整", messageType)
		}
		if tmplInfo.subject == "" {
			t.Errorf("通知类型 %s 缺少邮件主题", messageType)
		}
	}
}
