package handler

import (
	"github.com/canteen-dev/restaurant-roster/backend/internal/config"
	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/repository"
	"github.com/canteen-dev/restaurant-roster/backend/internal/roster"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	weekLocker    *roster.WeekLocker

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		weekLocker:    roster.NewWeekLocker(),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployeeInfo) // 员工之间可以互相查看基础信息，方便联系换班
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployeeInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateEmployeePassword)
			})
		})

		r.Route("/availability/{weekStart}", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveEmployee)
			r.Post("/", h.SubmitMyAvailability)
			r.Get("/", h.GetMyAvailability)
		})

		r.Route("/absences", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateAbsencePeriod)
			r.Get("/", h.GetAbsencePeriods)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/{id}/review", h.ReviewAbsencePeriod)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateLeavePeriod)
			r.Get("/", h.GetLeavePeriods)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/{id}/review", h.ReviewLeavePeriod)
		})

		r.Route("/staffing-limits", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateStaffingLimit)
			r.Get("/", h.GetAllStaffingLimits)
			r.Patch("/{id}", h.UpdateStaffingLimit)
			r.Delete("/{id}", h.DeleteStaffingLimit)
		})

		r.Route("/start-time-targets", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateStartTimeTarget)
			r.Get("/", h.GetAllStartTimeTargets)
			r.Patch("/{id}", h.UpdateStartTimeTarget)
			r.Delete("/{id}", h.DeleteStartTimeTarget)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/generate", h.GenerateSchedule)
			r.Route("/{weekStart}", func(r chi.Router) {
				r.Get("/", h.GetSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/coverage", h.GetScheduleCoverage)
			})
		})

		r.Route("/substitutions", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveEmployee)
			r.Post("/", h.RequestSubstitution)
			r.Get("/", h.GetMySubstitutionRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.substitutionRequest)
				r.Get("/", h.GetSubstitutionRequest)
				r.Post("/apply", h.ApplySubstitution)
				r.Post("/approve", h.ApproveSubstitution)
				r.Post("/reject", h.RejectSubstitution)
				r.Post("/cancel", h.CancelSubstitution)
			})
		})

		r.Route("/shifts/{shiftID}/substitutions", func(r chi.Router) {
			r.Get("/", h.GetShiftSubstitutionRequests)
		})

		r.Route("/work-records", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveEmployee)
			r.Post("/", h.SubmitWorkRecord)
			r.Get("/", h.GetMyWorkRecords)
		})
	})
}
