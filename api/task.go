package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskHandler 看板任务处理器
type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required" example:"Desain homepage"`
	Description string `json:"description"`
	ColumnID    string `json:"column_id" example:"todo"`
	StartDate   string `json:"start_date" example:"2024-07-20"`
	EndDate     string `json:"end_date" example:"2024-07-24"`
	Priority    string `json:"priority" example:"high"`
	AssignedTo  *uint  `json:"assigned_to"`
}

type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ColumnID    string  `json:"column_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Priority    string  `json:"priority"`
	AssignedTo  *uint   `json:"assigned_to"`
}

// MoveTaskRequest 拖拽排序请求
// over_task_id 表示落点处的任务；只给 column_id 表示落在列空白处
type MoveTaskRequest struct {
	TaskID     uint   `json:"task_id" binding:"required"`
	ColumnID   string `json:"column_id"`
	OverTaskID *uint  `json:"over_task_id"`
}

// Create 创建任务
// @Summary 创建任务
// @Description 创建一条新任务，追加到扁平列表末尾（即所在列的最后）
// @Tags 看板
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "任务信息"
// @Success 200 {object} Response{data=models.Task} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "员工不存在"
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	columnID := req.ColumnID
	if columnID == "" {
		columnID = models.TaskColumnTodo
	}
	if !models.IsValidTaskColumn(columnID) {
		BadRequest(c, "无效的看板列，可选: "+strings.Join(models.GetTaskColumns(), ", "))
		return
	}
	if req.Priority != "" && !models.IsValidTaskPriority(req.Priority) {
		BadRequest(c, "无效的优先级，可选: "+strings.Join(models.GetTaskPriorities(), ", "))
		return
	}
	var startDate, endDate *time.Time
	if req.StartDate != "" {
		t, err := time.ParseInLocation(dateLayout, req.StartDate, time.Local)
		if err != nil {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		startDate = &t
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation(dateLayout, req.EndDate, time.Local)
		if err != nil {
			BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
			return
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		BadRequest(c, "截止日期不能早于开始日期")
		return
	}
	if req.AssignedTo != nil {
		var emp models.Employee
		if err := database.DB.First(&emp, *req.AssignedTo).Error; err != nil {
			NotFound(c, "员工不存在")
			return
		}
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    columnID,
		StartDate:   startDate,
		EndDate:     endDate,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	}
	// position 追加到队尾，和其他写入者串行化
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&models.Task{}).Select("COALESCE(MAX(position), -1)").Scan(&maxPos).Error; err != nil {
			return err
		}
		task.Position = maxPos + 1
		return tx.Create(&task).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建任务失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", task)
}

// List 获取任务列表
// @Summary 获取任务列表
// @Description 按 position 升序返回全部任务，可按看板列过滤；客户端按 column_id 分列展示
// @Tags 看板
// @Produce json
// @Param column_id query string false "看板列筛选 (todo/inprogress/inreview/done)"
// @Success 200 {object} Response{data=[]models.Task} "获取成功"
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Task{})
	if columnID := c.Query("column_id"); columnID != "" {
		if !models.IsValidTaskColumn(columnID) {
			BadRequest(c, "无效的看板列，可选: "+strings.Join(models.GetTaskColumns(), ", "))
			return
		}
		query = query.Where("column_id = ?", columnID)
	}
	var list []models.Task
	if err := query.Order("position").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Get 获取单条任务
// @Summary 获取单条任务
// @Description 根据ID获取任务详情
// @Tags 看板
// @Produce json
// @Param id path int true "任务ID"
// @Success 200 {object} Response{data=models.Task} "获取成功"
// @Failure 404 {object} Response "任务不存在"
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var task models.Task
	if err := database.DB.First(&task, uint(id)).Error; err != nil {
		NotFound(c, "任务不存在")
		return
	}
	Success(c, task)
}

// Update 更新任务
// @Summary 更新任务
// @Description 更新指定任务的内容字段；通过此接口改列不调整顺序，拖拽排序请用 /tasks/move
// @Tags 看板
// @Accept json
// @Produce json
// @Param id path int true "任务ID"
// @Param request body UpdateTaskRequest true "任务信息"
// @Success 200 {object} Response{data=models.Task} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "任务不存在"
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var task models.Task
	if err := database.DB.First(&task, uint(id)).Error; err != nil {
		NotFound(c, "任务不存在")
		return
	}
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ColumnID != "" {
		if !models.IsValidTaskColumn(req.ColumnID) {
			BadRequest(c, "无效的看板列，可选: "+strings.Join(models.GetTaskColumns(), ", "))
			return
		}
		updates["column_id"] = req.ColumnID
	}
	if req.StartDate != nil {
		if *req.StartDate == "" {
			updates["start_date"] = nil
		} else {
			t, err := time.ParseInLocation(dateLayout, *req.StartDate, time.Local)
			if err != nil {
				BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
				return
			}
			updates["start_date"] = t
		}
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			updates["end_date"] = nil
		} else {
			t, err := time.ParseInLocation(dateLayout, *req.EndDate, time.Local)
			if err != nil {
				BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
				return
			}
			updates["end_date"] = t
		}
	}
	if req.Priority != "" {
		if !models.IsValidTaskPriority(req.Priority) {
			BadRequest(c, "无效的优先级，可选: "+strings.Join(models.GetTaskPriorities(), ", "))
			return
		}
		updates["priority"] = req.Priority
	}
	if req.AssignedTo != nil {
		var emp models.Employee
		if err := database.DB.First(&emp, *req.AssignedTo).Error; err != nil {
			NotFound(c, "员工不存在")
			return
		}
		updates["assigned_to"] = *req.AssignedTo
	}
	if err := database.DB.Model(&task).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&task, task.ID)
	SuccessWithMessage(c, "更新成功", task)
}

// Delete 删除任务
// @Summary 删除任务
// @Description 删除指定任务，其余任务相对顺序不变
// @Tags 看板
// @Produce json
// @Param id path int true "任务ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "任务不存在"
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var task models.Task
	if err := database.DB.First(&task, uint(id)).Error; err != nil {
		NotFound(c, "任务不存在")
		return
	}
	if err := database.DB.Delete(&task).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// applyTaskMove 在有序分区的扁平列表上执行一次移动，返回调整后的列表
// 与是否有变化。规则：
//   - 落在任务上：被拖任务改入目标任务所在列，并插到目标任务之前；
//   - 只落在列上：列不同时改列并追加到列表末尾（即该列末尾）；
//   - 落在自身、目标不存在或列相同且无目标任务：不变。
//
// 任何情况下不增删元素，每个任务始终恰好属于一列。
func applyTaskMove(tasks []models.Task, taskID uint, columnID string, overTaskID *uint) ([]models.Task, bool) {
	from := -1
	for i, t := range tasks {
		if t.ID == taskID {
			from = i
			break
		}
	}
	if from == -1 {
		return tasks, false
	}
	moved := tasks[from]

	if overTaskID != nil {
		if *overTaskID == taskID {
			return tasks, false
		}
		rest := make([]models.Task, 0, len(tasks)-1)
		rest = append(rest, tasks[:from]...)
		rest = append(rest, tasks[from+1:]...)
		to := -1
		for i, t := range rest {
			if t.ID == *overTaskID {
				to = i
				break
			}
		}
		if to == -1 {
			// 落点任务不存在，丢弃本次拖拽
			return tasks, false
		}
		moved.ColumnID = rest[to].ColumnID
		out := make([]models.Task, 0, len(tasks))
		out = append(out, rest[:to]...)
		out = append(out, moved)
		out = append(out, rest[to:]...)
		return out, true
	}

	if columnID == "" || columnID == moved.ColumnID {
		return tasks, false
	}
	moved.ColumnID = columnID
	out := make([]models.Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)
	out = append(out, moved)
	return out, true
}

// Move 拖拽排序
// @Summary 拖拽排序
// @Description 在看板上移动任务：落在任务上插到该任务之前（跨列时改列），只落在列上追加到列尾。无效落点不改变任何数据
// @Tags 看板
// @Accept json
// @Produce json
// @Param request body MoveTaskRequest true "移动信息"
// @Success 200 {object} Response{data=[]models.Task} "移动成功，返回最新扁平列表"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "任务不存在"
// @Router /api/v1/tasks/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.ColumnID != "" && !models.IsValidTaskColumn(req.ColumnID) {
		BadRequest(c, "无效的看板列，可选: "+strings.Join(models.GetTaskColumns(), ", "))
		return
	}

	var result []models.Task
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var tasks []models.Task
		if err := tx.Order("position").Find(&tasks).Error; err != nil {
			return err
		}
		found := false
		for _, t := range tasks {
			if t.ID == req.TaskID {
				found = true
				break
			}
		}
		if !found {
			return gorm.ErrRecordNotFound
		}

		moved, changed := applyTaskMove(tasks, req.TaskID, req.ColumnID, req.OverTaskID)
		result = moved
		if !changed {
			return nil
		}
		// 批量改写 position/column_id，相当于一次整表顺序重建
		for i := range moved {
			moved[i].Position = i
			if err := tx.Model(&models.Task{}).
				Where("id = ?", moved[i].ID).
				Updates(map[string]interface{}{
					"position":  i,
					"column_id": moved[i].ColumnID,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "任务不存在")
		return
	}
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "移动任务失败"))
		return
	}
	SuccessWithMessage(c, "移动成功", result)
}

// TaskAnalyticsResponse 看板统计
type TaskAnalyticsResponse struct {
	Total          int            `json:"total"`
	ByColumn       map[string]int `json:"by_column"`
	ByPriority     map[string]int `json:"by_priority"`
	Overdue        int            `json:"overdue"`
	CompletionRate float64        `json:"completion_rate"`
}

// computeTaskAnalytics 看板统计的纯计算部分
// 过期定义：截止日期早于 now 所在日零点且尚未进入 done 列
func computeTaskAnalytics(tasks []models.Task, now time.Time) TaskAnalyticsResponse {
	resp := TaskAnalyticsResponse{
		Total:      len(tasks),
		ByColumn:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, col := range models.GetTaskColumns() {
		resp.ByColumn[col] = 0
	}
	today := startOfDay(now)
	for _, t := range tasks {
		resp.ByColumn[t.ColumnID]++
		if t.Priority != "" {
			resp.ByPriority[t.Priority]++
		}
		if t.EndDate != nil && t.EndDate.Before(today) && t.ColumnID != models.TaskColumnDone {
			resp.Overdue++
		}
	}
	if resp.Total > 0 {
		resp.CompletionRate = float64(resp.ByColumn[models.TaskColumnDone]) / float64(resp.Total)
	}
	return resp
}

// Analytics 看板统计
// @Summary 看板统计
// @Description 统计各列与各优先级任务数、逾期任务数与完成率
// @Tags 看板
// @Produce json
// @Success 200 {object} Response{data=TaskAnalyticsResponse} "获取成功"
// @Router /api/v1/tasks/analytics [get]
func (h *TaskHandler) Analytics(c *gin.Context) {
	var tasks []models.Task
	if err := database.DB.Order("position").Find(&tasks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, computeTaskAnalytics(tasks, time.Now()))
}
