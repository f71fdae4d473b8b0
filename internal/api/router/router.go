package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/api/handler"
	"github.com/awieserg/Notes-Ibacy/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.Limiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.GET("/health", health)

	if cfg.Server.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window, logger))
	}
	{
		// 学生模块
		students := v1.Group("/students")
		{
			students.GET("", h.Student.ListStudents)
			students.POST("", h.Student.CreateStudent)
			students.GET("/:id", h.Student.GetStudent)
			students.PUT("/:id", h.Student.UpdateStudent)
			students.DELETE("/:id", h.Student.DeleteStudent)
			students.GET("/:id/grades", h.Student.ListStudentGrades)
			students.GET("/:id/bulletin", h.Bulletin.GetBulletin)
			students.GET("/:id/bulletin/export", h.Export.ExportBulletin)
		}

		// 教师模块
		teachers := v1.Group("/teachers")
		{
			teachers.GET("", h.Teacher.ListTeachers)
			teachers.POST("", h.Teacher.CreateTeacher)
			teachers.GET("/:id", h.Teacher.GetTeacher)
			teachers.PUT("/:id", h.Teacher.UpdateTeacher)
			teachers.DELETE("/:id", h.Teacher.DeleteTeacher)
		}

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:id", h.Course.GetCourse)
			courses.PUT("/:id", h.Course.UpdateCourse)
			courses.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 科目目录
		v1.GET("/subjects", h.Subject.ListSubjects)

		// 成绩模块
		grades := v1.Group("/grades")
		{
			grades.GET("", h.Grade.ListGrades)
			grades.POST("", h.Grade.CreateGrade)
			grades.GET("/:id", h.Grade.GetGrade)
			grades.PUT("/:id", h.Grade.UpdateGrade)
			grades.DELETE("/:id", h.Grade.DeleteGrade)
		}

		// 成绩单与导出
		v1.GET("/bulletins", h.Bulletin.ListBulletins)
		v1.GET("/export/class-results", h.Export.ExportClassResults)

		// 快照与变更事件
		v1.GET("/snapshot", h.Snapshot.GetSnapshot)
		v1.GET("/snapshot/stats", h.Snapshot.GetStats)
		v1.GET("/events", h.Event.Stream)
	}

	return r
}
