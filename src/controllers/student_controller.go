package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/formdata"
	"Backend-ScholarDB/src/services/storage"
	"Backend-ScholarDB/src/services/students"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StudentController struct {
	students *students.Service
	storage  *storage.Client
}

func NewStudentController(svc *students.Service, storageClient *storage.Client) *StudentController {
	return &StudentController{students: svc, storage: storageClient}
}

// parsePayload อ่าน payload จาก JSON body ปกติ หรือ multipart form
// กรณี multipart: ค่า text ที่ parse เป็น JSON ได้จะถูก parse (เช่น form_data)
// ส่วนไฟล์อัปโหลดขึ้น storage แล้วคืน URL เป็น FormData ตามตำแหน่ง dotted key
// เช่น part ชื่อ "field_id.question_id" กลายเป็น form_data[field_id][question_id] = url
func (ctl *StudentController) parsePayload(c *fiber.Ctx, out interface{}) (models.FormData, error) {
	if !strings.Contains(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		return nil, c.BodyParser(out)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	jsonData := make(map[string]interface{}, len(form.Value))
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			jsonData[key] = parsed
		} else {
			jsonData[key] = values[0]
		}
	}

	encoded, err := json.Marshal(jsonData)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return nil, err
	}

	fileData := models.FormData{}
	for key, headers := range form.File {
		if key == "form_data" {
			continue
		}
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			uploaded, err := ctl.storage.Upload(header.Filename, header.Header.Get("Content-Type"), file)
			file.Close()
			if err != nil {
				return nil, err
			}
			formdata.SetNested(fileData, key, uploaded.URL)
		}
	}

	return fileData, nil
}

// Create - สร้างนักเรียนใหม่ (รองรับทั้ง JSON และ multipart พร้อมไฟล์)
// @Summary      Create a new student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body body models.CreateStudentPayload true "Student data"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /student [post]
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var payload models.CreateStudentPayload
	fileData, err := ctl.parsePayload(c, &payload)
	if err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	scholarID, err := primitive.ObjectIDFromHex(payload.ScholarID)
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	processed := payload.FormData
	if processed == nil {
		processed = models.FormData{}
	}
	if len(fileData) > 0 {
		processed = formdata.Merge(processed, fileData)
	}

	student, err := ctl.students.Create(c.Context(), scholarID, processed)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "สร้างนักเรียนสำเร็จ!", student)
}

// GetAll - ดึงนักเรียนทั้งหมด
// @Summary      Get all students
// @Tags         students
// @Produce      json
// @Success      200  {object}  models.BaseResponse
// @Router       /student [get]
func (ctl *StudentController) GetAll(c *fiber.Ctx) error {
	all, err := ctl.students.GetAll(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลนักเรียนสำเร็จ", all)
}

// GetByID - ดึงนักเรียนตาม ID
// @Summary      Get a student by ID
// @Tags         students
// @Produce      json
// @Param        id path string true "Student ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/{id} [get]
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID นักเรียนไม่ถูกต้อง")
	}

	student, err := ctl.students.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลนักเรียนสำเร็จ", student)
}

// GetByScholar - ดึงนักเรียนทั้งหมดของทุน
// @Summary      Get students by scholar ID
// @Tags         students
// @Produce      json
// @Param        scholarId path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Router       /student/scholar/{scholarId} [get]
func (ctl *StudentController) GetByScholar(c *fiber.Ctx) error {
	scholarID, err := primitive.ObjectIDFromHex(c.Params("scholarId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	list, err := ctl.students.GetByScholar(c.Context(), scholarID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลนักเรียนสำเร็จ", list)
}

// GetCountByScholar - นับจำนวนนักเรียนของทุน
// @Summary      Count students of a scholar
// @Tags         students
// @Produce      json
// @Param        scholarId path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Router       /student/scholar/{scholarId}/count [get]
func (ctl *StudentController) GetCountByScholar(c *fiber.Ctx) error {
	scholarID, err := primitive.ObjectIDFromHex(c.Params("scholarId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	count, err := ctl.students.CountByScholar(c.Context(), scholarID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงจำนวนนักเรียนสำเร็จ", fiber.Map{"count": count})
}

// GetByStatus - ดึงนักเรียนตามสถานะความครบถ้วน
// @Summary      Get students by completion status
// @Tags         students
// @Produce      json
// @Param        status path string true "Status (incomplete or completed)"
// @Success      200  {object}  models.BaseResponse
// @Router       /student/status/{status} [get]
func (ctl *StudentController) GetByStatus(c *fiber.Ctx) error {
	status := c.Params("status")
	if status != models.StudentStatusIncomplete && status != models.StudentStatusCompleted {
		return utils.FailedResponse(c, "สถานะไม่ถูกต้อง")
	}

	list, err := ctl.students.GetByStatus(c.Context(), status)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลนักเรียนสำเร็จ", list)
}

// Search - ค้นหานักเรียนจากชื่อและคำตอบในฟอร์ม
// @Summary      Search students by keyword
// @Tags         students
// @Produce      json
// @Param        keyword query string true "Search keyword"
// @Success      200  {object}  models.BaseResponse
// @Router       /student/search [get]
func (ctl *StudentController) Search(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return utils.FailedResponse(c, "ไม่พบคำค้นหา")
	}

	matched, err := ctl.students.Search(c.Context(), keyword)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ค้นหานักเรียนสำเร็จ", matched)
}

// SearchByScholar - ค้นหานักเรียนภายในทุนเดียว
// @Summary      Search students of a scholar by keyword
// @Tags         students
// @Produce      json
// @Param        scholarId path  string true "Scholar ID"
// @Param        keyword   query string true "Search keyword"
// @Success      200  {object}  models.BaseResponse
// @Router       /student/scholar/{scholarId}/search [get]
func (ctl *StudentController) SearchByScholar(c *fiber.Ctx) error {
	scholarID, err := primitive.ObjectIDFromHex(c.Params("scholarId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	keyword := c.Query("keyword")
	if keyword == "" {
		return utils.FailedResponse(c, "ไม่พบคำค้นหา")
	}

	matched, err := ctl.students.SearchByScholar(c.Context(), scholarID, keyword)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ค้นหานักเรียนสำเร็จ", matched)
}

// Update - บันทึก draft ของฟอร์ม (merge กับข้อมูลเดิม)
// @Summary      Update a student's form data
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id   path string true "Student ID"
// @Param        body body models.UpdateStudentPayload true "Student data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/{id} [put]
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID นักเรียนไม่ถูกต้อง")
	}

	var payload models.UpdateStudentPayload
	fileData, err := ctl.parsePayload(c, &payload)
	if err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	if len(fileData) > 0 {
		if payload.FormData == nil {
			payload.FormData = fileData
		} else {
			payload.FormData = formdata.Merge(payload.FormData, fileData)
		}
	}

	updated, err := ctl.students.Update(c.Context(), id, payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปเดตข้อมูลนักเรียนสำเร็จ!", updated)
}

// Delete - ลบนักเรียนพร้อมไฟล์ที่ฟอร์มอ้างถึง
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Param        id path string true "Student ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/{id} [delete]
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID นักเรียนไม่ถูกต้อง")
	}

	if err := ctl.students.Delete(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบนักเรียนสำเร็จ!", nil)
}

// SetStatus - เปลี่ยนสถานะนักเรียนโดยตรง
// @Summary      Set a student's status
// @Tags         students
// @Produce      json
// @Param        id     path string true "Student ID"
// @Param        status path string true "Status (incomplete or completed)"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/{id}/status/{status} [patch]
func (ctl *StudentController) SetStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID นักเรียนไม่ถูกต้อง")
	}

	status := c.Params("status")
	if status != models.StudentStatusIncomplete && status != models.StudentStatusCompleted {
		return utils.FailedResponse(c, "สถานะไม่ถูกต้อง")
	}

	updated, err := ctl.students.SetStatus(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปเดตสถานะนักเรียนสำเร็จ!", updated)
}

// SubmitForm - ส่งฟอร์มรอบสุดท้าย
// @Summary      Submit a student's form
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id   path string true "Student ID"
// @Param        body body models.SubmitFormPayload true "Form data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/{id}/submit [post]
func (ctl *StudentController) SubmitForm(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID นักเรียนไม่ถูกต้อง")
	}

	var payload models.SubmitFormPayload
	fileData, err := ctl.parsePayload(c, &payload)
	if err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	formData := payload.FormData
	if len(fileData) > 0 {
		formData = formdata.Merge(formData, fileData)
	}

	submitted, err := ctl.students.SubmitForm(c.Context(), id, formData)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ส่งฟอร์มสำเร็จ!", submitted)
}

// GenerateTempPermission - ออก token ชั่วคราวให้นักเรียนแก้ไขฟอร์มตัวเอง
// @Summary      Generate a temporary edit permission token
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body body models.GenerateTempPermissionPayload true "Student ID and TTL"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /student/temp-permission [post]
func (ctl *StudentController) GenerateTempPermission(c *fiber.Ctx) error {
	var payload models.GenerateTempPermissionPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	permission, err := ctl.students.GenerateTempPermission(c.Context(), payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "สร้าง Token สำหรับแก้ไขฟอร์มสำเร็จ", permission)
}

// VerifyTempPermission - ตรวจสอบ token ชั่วคราว
// @Summary      Verify a temporary edit permission token
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body body models.VerifyTempPermissionPayload true "Token and student ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /student/temp-permission/verify [post]
func (ctl *StudentController) VerifyTempPermission(c *fiber.Ctx) error {
	var payload models.VerifyTempPermissionPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	check, err := ctl.students.VerifyTempPermission(c.Context(), payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบนักเรียน", fiber.StatusNotFound)
		}
		return utils.FailedResponse(c, "Token ไม่ถูกต้องหรือหมดอายุ")
	}
	if !check.Valid {
		return utils.FailedResponse(c, "Token ไม่ตรงกับ Student ID")
	}

	return utils.SuccessResponse(c, "Token ถูกต้อง", check)
}
