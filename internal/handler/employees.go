package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllEmployeeInfo(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username         string  `json:"username" validate:"required"`
		FullName         string  `json:"fullName" validate:"required"`
		Email            string  `json:"email" validate:"required,email"`
		PrimaryRole      string  `json:"primaryRole" validate:"required,oneof=厨师 配送员 收银员 管理员"`
		SecondaryRole    *string `json:"secondaryRole" validate:"omitempty,oneof=厨师 配送员 收银员"`
		MaxShiftsPerWeek int32   `json:"maxShiftsPerWeek" validate:"required,min=1,max=14"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.SecondaryRole != nil && *req.SecondaryRole == req.PrimaryRole {
		h.badRequest(w, r, errors.New("副岗位不能与主岗位相同"))
		return
	}

	// 生成随机密码
	password := utils.GenerateRandomPassword(h.config.NewEmployee.PasswordLength)

	// 对密码进行哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 插入员工到数据库中
	employee := &domain.Employee{
		Username:         req.Username,
		PasswordHash:     string(hashedPassword),
		FullName:         req.FullName,
		Email:            req.Email,
		PrimaryRole:      domain.Role(req.PrimaryRole),
		MaxShiftsPerWeek: req.MaxShiftsPerWeek,
	}
	if req.SecondaryRole != nil {
		role := domain.Role(*req.SecondaryRole)
		employee.SecondaryRole = &role
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 准备通知消息
	message := domain.NotificationMessage{
		Type: "create_employee",
		To:   employee.Email,
		Data: domain.CreateEmployeeNotificationData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	// 对消息进行序列化
	messageData, err := json.Marshal(message)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 将消息发送到队列
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        messageData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 成功响应
	h.successResponse(w, r, "员工创建成功", employee)
}

func (h *Handler) GetEmployeeInfo(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName         *string `json:"fullName"`
		Email            *string `json:"email" validate:"omitempty,email"`
		PrimaryRole      *string `json:"primaryRole" validate:"omitempty,oneof=厨师 配送员 收银员 管理员"`
		SecondaryRole    *string `json:"secondaryRole" validate:"omitempty,oneof=厨师 配送员 收银员 无"`
		MaxShiftsPerWeek *int32  `json:"maxShiftsPerWeek" validate:"omitempty,min=1,max=14"`
		IsActive         *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.PrimaryRole != nil {
		employee.PrimaryRole = domain.Role(*req.PrimaryRole)
	}
	if req.SecondaryRole != nil {
		if *req.SecondaryRole == "无" {
			employee.SecondaryRole = nil
		} else {
			role := domain.Role(*req.SecondaryRole)
			employee.SecondaryRole = &role
		}
	}
	if req.MaxShiftsPerWeek != nil {
		employee.MaxShiftsPerWeek = *req.MaxShiftsPerWeek
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if employee.SecondaryRole != nil && *employee.SecondaryRole == employee.PrimaryRole {
		h.badRequest(w, r, errors.New("副岗位不能与主岗位相同"))
		return
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			case pgErr.ConstraintName == "employees_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) UpdateEmployeePassword(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 对密码进行哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改密码成功", nil)
}
