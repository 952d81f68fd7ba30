package route

import (
	repo "student-records-api/app/repository/postgresql"
	service "student-records-api/app/service/postgresql"
	"student-records-api/database"
	"student-records-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupPostgresRoutes(app *fiber.App, db *database.DB, tokens *utils.TokenMaker, auth fiber.Handler) {
	userRepo := repo.NewUserRepository(db)
	studentRepo := repo.NewStudentRepository(db)
	courseRepo := repo.NewCourseRepository(db)
	enrollmentRepo := repo.NewEnrollmentRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	studentService := service.NewStudentService(studentRepo)
	courseService := service.NewCourseService(courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo)

	api := app.Group("/api/v1")

	// PUBLIC
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authService.Login)
	authGroup.Post("/refresh", authService.Refresh)

	// PROTECTED
	authGroup.Get("/profile", auth, authService.Profile)

	students := api.Group("/students", auth)
	students.Post("/", studentService.CreateStudent)
	students.Get("/", studentService.GetAllStudents)
	students.Get("/dni/:dni", studentService.GetStudentByDNI)
	students.Get("/:id", studentService.GetStudentByID)
	students.Put("/:id", studentService.UpdateStudent)
	students.Delete("/:id", studentService.DeleteStudent)
	students.Get("/:id/history", studentService.GetStudentHistory)

	courses := api.Group("/courses", auth)
	courses.Get("/", courseService.GetAvailableCourses)
	courses.Post("/", courseService.CreateCourse)
	courses.Get("/statistics", courseService.GetCourseStatistics)
	courses.Get("/:id", courseService.GetCourseByID)

	enrollments := api.Group("/enrollments", auth)
	enrollments.Post("/", enrollmentService.CreateEnrollment)
	enrollments.Post("/:id/grades", enrollmentService.RecordGrade)
}
