package database

import (
	"fmt"
	"log"

	"course_platform_backend/internal/config"
	"course_platform_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Video{},
		&model.Progress{},
		&model.ContactSubmission{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认课程（目录为空时插入示例课程）
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		if err := seedSampleCourse(db); err != nil {
			return nil, err
		}
		log.Println("Sample course seeded")
	}

	return db, nil
}

// seedSampleCourse 插入内置示例课程：3个章节，3/2/3 个视频
func seedSampleCourse(db *gorm.DB) error {
	course := &model.Course{
		UUIDBase:    model.UUIDBase{ID: "course-1"},
		Title:       "Complete Web Development Bootcamp",
		Description: "Learn web development from scratch with this comprehensive course covering HTML, CSS, JavaScript, React, and more.",
		Instructor:  "John Smith",
		Thumbnail:   "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?q=80&w=2070&auto=format&fit=crop",
		Modules: []model.CourseModule{
			{
				UUIDBase:    model.UUIDBase{ID: "module-1"},
				Title:       "HTML Fundamentals",
				Description: "Learn the basics of HTML, the building blocks of web pages.",
				Order:       1,
				Videos: []model.Video{
					{
						UUIDBase:    model.UUIDBase{ID: "video-1-1"},
						Title:       "Introduction to HTML",
						Description: "Learn what HTML is and why it's important for web development.",
						Duration:    "10:15",
						VideoURL:    "https://www.youtube.com/embed/UB1O30fR-EE",
						Thumbnail:   "https://img.youtube.com/vi/UB1O30fR-EE/maxresdefault.jpg",
						Order:       1,
					},
					{
						UUIDBase:    model.UUIDBase{ID: "video-1-2"},
						Title:       "HTML Elements & Tags",
						Description: "Learn about different HTML elements and how to use them properly.",
						Duration:    "12:30",
						VideoURL:    "https://www.youtube.com/embed/salY_Sm6mv4",
						Thumbnail:   "https://img.youtube.com/vi/salY_Sm6mv4/maxresdefault.jpg",
						Order:       2,
					},
					{
						UUIDBase:    model.UUIDBase{ID: "video-1-3"},
						Title:       "HTML Forms & Inputs",
						Description: "Learn how to create forms and work with different input types in HTML.",
						Duration:    "15:45",
						VideoURL:    "https://www.youtube.com/embed/fNcJuPIZ2WE",
						Thumbnail:   "https://img.youtube.com/vi/fNcJuPIZ2WE/maxresdefault.jpg",
						Order:       3,
					},
				},
			},
			{
				UUIDBase:    model.UUIDBase{ID: "module-2"},
				Title:       "CSS Styling",
				Description: "Master CSS to style your web pages beautifully.",
				Order:       2,
				Videos: []model.Video{
					{
						UUIDBase:    model.UUIDBase{ID: "video-2-1"},
						Title:       "CSS Basics",
						Description: "Learn the basics of CSS and how to apply styles to HTML elements.",
						Duration:    "14:20",
						VideoURL:    "https://www.youtube.com/embed/yfoY53QXEnI",
						Thumbnail:   "https://img.youtube.com/vi/yfoY53QXEnI/maxresdefault.jpg",
						Order:       1,
					},
					{
						UUIDBase:    model.UUIDBase{ID: "video-2-2"},
						Title:       "CSS Layout & Positioning",
						Description: "Master different CSS layout techniques including flexbox and grid.",
						Duration:    "18:10",
						VideoURL:    "https://www.youtube.com/embed/jV8B24rSN5o",
						Thumbnail:   "https://img.youtube.com/vi/jV8B24rSN5o/maxresdefault.jpg",
						Order:       2,
					},
				},
			},
			{
				UUIDBase:    model.UUIDBase{ID: "module-3"},
				Title:       "JavaScript Essentials",
				Description: "Learn the fundamentals of JavaScript programming.",
				Order:       3,
				Videos: []model.Video{
					{
						UUIDBase:    model.UUIDBase{ID: "video-3-1"},
						Title:       "JavaScript Basics",
						Description: "Get started with JavaScript basics including variables, functions, and control flow.",
						Duration:    "20:15",
						VideoURL:    "https://www.youtube.com/embed/hdI2bqOjy3c",
						Thumbnail:   "https://img.youtube.com/vi/hdI2bqOjy3c/maxresdefault.jpg",
						Order:       1,
					},
					{
						UUIDBase:    model.UUIDBase{ID: "video-3-2"},
						Title:       "DOM Manipulation",
						Description: "Learn how to manipulate the DOM using JavaScript.",
						Duration:    "16:40",
						VideoURL:    "https://www.youtube.com/embed/0ik6X4DJKCc",
						Thumbnail:   "https://img.youtube.com/vi/0ik6X4DJKCc/maxresdefault.jpg",
						Order:       2,
					},
					{
						UUIDBase:    model.UUIDBase{ID: "video-3-3"},
						Title:       "JavaScript Events",
						Description: "Master event handling in JavaScript applications.",
						Duration:    "14:50",
						VideoURL:    "https://www.youtube.com/embed/e57ReoUn6kM",
						Thumbnail:   "https://img.youtube.com/vi/e57ReoUn6kM/maxresdefault.jpg",
						Order:       3,
					},
				},
			},
		},
	}

	return db.Create(course).Error
}
