package database

import (
	"time"

	"erp/models"

	"gorm.io/gorm"
)

// Seed 初始化种子数据
// 每张表仅在为空时写入，保证重复调用幂等
func Seed(db *gorm.DB) error {
	if err := seedEmployees(db); err != nil {
		return err
	}
	if err := seedCustomers(db); err != nil {
		return err
	}
	if err := seedRevenues(db); err != nil {
		return err
	}
	if err := seedExpenses(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}
	if err := seedAppointments(db); err != nil {
		return err
	}
	return seedTasks(db)
}

func seedEmployees(db *gorm.DB) error {
	var count int64
	db.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		return nil
	}
	employees := []models.Employee{
		{Name: "Budi Santoso", Position: "Sales Manager", Email: "budi@example.com", Phone: "0812-1111-2222", Salary: 8500000},
		{Name: "Siti Rahma", Position: "Designer", Email: "siti@example.com", Phone: "0813-3333-4444", Salary: 7000000},
		{Name: "Andi Wijaya", Position: "Developer", Email: "andi@example.com", Phone: "0815-5555-6666", Salary: 9000000},
	}
	return db.Create(&employees).Error
}

func seedCustomers(db *gorm.DB) error {
	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count > 0 {
		return nil
	}
	customers := []models.Customer{
		{Name: "Client A", Category: models.CustomerCategoryPerusahaan, Type: models.CustomerTypeB2B, Email: "contact@client-a.com", Phone: "021-555-0101", Address: "Jl. Sudirman No. 1, Jakarta", PICName: "Rina"},
		{Name: "Client B", Category: models.CustomerCategoryPerorangan, Type: models.CustomerTypeB2C, Email: "client.b@example.com", Phone: "021-555-0102", Address: "Jl. Thamrin No. 8, Jakarta", PICName: "Dodi"},
		{Name: "Client C", Category: models.CustomerCategoryVIP, Type: models.CustomerTypeReseller, Email: "order@client-c.com", Phone: "021-555-0103", Address: "Jl. Gatot Subroto No. 21, Jakarta", PICName: "Maya"},
	}
	return db.Create(&customers).Error
}

func seedRevenues(db *gorm.DB) error {
	var count int64
	db.Model(&models.Revenue{}).Count(&count)
	if count > 0 {
		return nil
	}
	one, two, three := uint(1), uint(2), uint(3)
	revenues := []models.Revenue{
		{Date: time.Date(2024, 11, 15, 0, 0, 0, 0, time.Local), Amount: 1200, Customer: "Client A", CustomerID: &one, Description: "Web Design Project"},
		{Date: time.Date(2024, 11, 20, 0, 0, 0, 0, time.Local), Amount: 750, Customer: "Client B", CustomerID: &two, Description: "Consulting Services"},
		{Date: time.Date(2024, 12, 5, 0, 0, 0, 0, time.Local), Amount: 2500, Customer: "Client C", CustomerID: &three, Description: "E-commerce Site"},
	}
	return db.Create(&revenues).Error
}

func seedExpenses(db *gorm.DB) error {
	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count > 0 {
		return nil
	}
	expenses := []models.Expense{
		{Date: time.Date(2024, 11, 1, 0, 0, 0, 0, time.Local), Amount: 50, Vendor: "Software Inc.", Description: "Monthly Subscription"},
		{Date: time.Date(2024, 11, 18, 0, 0, 0, 0, time.Local), Amount: 300, Vendor: "Office Supplies Co.", Description: "New Equipment"},
		{Date: time.Date(2024, 12, 8, 0, 0, 0, 0, time.Local), Amount: 150, Vendor: "Cloud Services", Description: "Hosting Bill"},
	}
	return db.Create(&expenses).Error
}

func seedProducts(db *gorm.DB) error {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil
	}
	products := []models.Product{
		{Name: "Paket Website UMKM", Description: "Landing page + hosting 1 tahun", Price: 2500000, Quantity: 20},
		{Name: "Template Toko Online", Description: "Template e-commerce siap pakai", Price: 750000, Quantity: 45},
		{Name: "Jasa Maintenance", Description: "Pemeliharaan bulanan", Price: 500000, Quantity: 8},
	}
	return db.Create(&products).Error
}

func seedAppointments(db *gorm.DB) error {
	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count > 0 {
		return nil
	}
	one, three := uint(1), uint(3)
	today := time.Now().Truncate(24 * time.Hour)
	appointments := []models.Appointment{
		{
			StartDate:   today.Add(10 * time.Hour),
			EndDate:     today.Add(11 * time.Hour),
			Title:       "Project Kick-off with Client A",
			Description: "Scope & timeline",
			AssignedTo:  &one,
			Category:    models.AppointmentCategoryMeeting,
			Status:      models.AppointmentStatusPlanned,
		},
		{
			StartDate:  today.Add(14 * time.Hour),
			EndDate:    today.Add(14*time.Hour + 30*time.Minute),
			Title:      "Team Stand-up",
			AssignedTo: &three,
			Category:   models.AppointmentCategoryWork,
			Status:     models.AppointmentStatusPlanned,
		},
	}
	return db.Create(&appointments).Error
}

func seedTasks(db *gorm.DB) error {
	var count int64
	db.Model(&models.Task{}).Count(&count)
	if count > 0 {
		return nil
	}
	two, three := uint(2), uint(3)
	due := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	tasks := []models.Task{
		{Title: "Desain homepage Client A", ColumnID: models.TaskColumnTodo, Position: 0, Priority: models.TaskPriorityHigh, AssignedTo: &two, EndDate: &due},
		{Title: "Setup repositori proyek", ColumnID: models.TaskColumnTodo, Position: 1, Priority: models.TaskPriorityMedium, AssignedTo: &three},
		{Title: "Integrasi payment gateway", ColumnID: models.TaskColumnInProgress, Position: 2, Priority: models.TaskPriorityUrgent, AssignedTo: &three, EndDate: &due},
		{Title: "Review copy landing page", ColumnID: models.TaskColumnInReview, Position: 3, Priority: models.TaskPriorityLow},
		{Title: "Onboarding dokumen internal", ColumnID: models.TaskColumnDone, Position: 4, Priority: models.TaskPriorityMedium},
	}
	return db.Create(&tasks).Error
}
