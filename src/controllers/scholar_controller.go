package controllers

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/export"
	"Backend-ScholarDB/src/services/scholars"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// อักขระที่ปลอดภัยใน Content-Disposition filename
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9ก-๙_.-]+`)

type ScholarController struct {
	scholars *scholars.Service
	export   *export.Service
}

func NewScholarController(scholarSvc *scholars.Service, exportSvc *export.Service) *ScholarController {
	return &ScholarController{scholars: scholarSvc, export: exportSvc}
}

// Create - สร้างทุนการศึกษาใหม่
// @Summary      Create a new scholar
// @Tags         scholars
// @Accept       json
// @Produce      json
// @Param        body body models.CreateScholarPayload true "Scholar data"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /scholar [post]
func (ctl *ScholarController) Create(c *fiber.Ctx) error {
	var payload models.CreateScholarPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	scholar, err := ctl.scholars.Create(c.Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "สร้างทุนการศึกษาสำเร็จ!", scholar)
}

// GetAll - ดึงทุนการศึกษาทั้งหมด
// @Summary      Get all scholars
// @Tags         scholars
// @Produce      json
// @Success      200  {object}  models.BaseResponse
// @Router       /scholar [get]
func (ctl *ScholarController) GetAll(c *fiber.Ctx) error {
	all, err := ctl.scholars.GetAll(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลทุนการศึกษาสำเร็จ", all)
}

// GetActive - ดึงเฉพาะทุนที่เปิดใช้งาน
// @Summary      Get active scholars
// @Tags         scholars
// @Produce      json
// @Success      200  {object}  models.BaseResponse
// @Router       /scholar/active [get]
func (ctl *ScholarController) GetActive(c *fiber.Ctx) error {
	active, err := ctl.scholars.GetActive(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลทุนการศึกษาที่เปิดใช้งานสำเร็จ", active)
}

// GetByID - ดึงทุนการศึกษาตาม ID
// @Summary      Get a scholar by ID
// @Tags         scholars
// @Produce      json
// @Param        id path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id} [get]
func (ctl *ScholarController) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	scholar, err := ctl.scholars.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลทุนการศึกษาสำเร็จ", scholar)
}

// Update - แก้ไขทุนการศึกษา
// @Summary      Update a scholar
// @Tags         scholars
// @Accept       json
// @Produce      json
// @Param        id   path string true "Scholar ID"
// @Param        body body models.UpdateScholarPayload true "Scholar data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id} [put]
func (ctl *ScholarController) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	var payload models.UpdateScholarPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.scholars.Update(c.Context(), id, payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปเดตทุนการศึกษาสำเร็จ!", updated)
}

// Delete - ลบทุนการศึกษาพร้อมนักเรียนและ field ทั้งหมด
// @Summary      Delete a scholar and all related data
// @Tags         scholars
// @Produce      json
// @Param        id path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id} [delete]
func (ctl *ScholarController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	deleted, err := ctl.scholars.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบทุนการศึกษาและข้อมูลที่เกี่ยวข้องสำเร็จ!", deleted)
}

// SetStatus - เปิด/ปิดการใช้งานทุน
// @Summary      Set scholar status
// @Tags         scholars
// @Produce      json
// @Param        id     path string true "Scholar ID"
// @Param        status path string true "Status (active or inactive)"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id}/status/{status} [patch]
func (ctl *ScholarController) SetStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	status := c.Params("status")
	if status != models.ScholarStatusActive && status != models.ScholarStatusInactive {
		return utils.FailedResponse(c, "สถานะไม่ถูกต้อง")
	}

	updated, err := ctl.scholars.SetStatus(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	statusText := "ปิดใช้งาน"
	if status == models.ScholarStatusActive {
		statusText = "เปิดใช้งาน"
	}
	return utils.SuccessResponse(c, statusText+"ทุนการศึกษาสำเร็จ!", updated)
}

// GenerateCSV - export คำตอบนักเรียนทั้งทุนเป็นไฟล์ CSV
// @Summary      Export students of a scholar as CSV
// @Tags         scholars
// @Produce      text/csv
// @Param        id path string true "Scholar ID"
// @Success      200  {string}  string "CSV content"
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/csv/{id} [get]
func (ctl *ScholarController) GenerateCSV(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	scholar, err := ctl.scholars.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	headers, rows, err := ctl.export.GenerateCSVData(c.Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	filename := fmt.Sprintf("students_%s_%s.csv",
		unsafeFilenameChars.ReplaceAllString(scholar.Name, "_"),
		time.Now().Format("2006-01-02"))

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.SendString(export.ConvertToCSVString(headers, rows))
}

// GetAnalytics - สรุปคำตอบของนักเรียนทั้งทุนเป็นข้อมูลกราฟ
// @Summary      Get response analytics for a scholar
// @Tags         scholars
// @Produce      json
// @Param        id path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/analytics/{id} [get]
func (ctl *ScholarController) GetAnalytics(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	if _, err := ctl.scholars.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	analytics, err := ctl.export.GenerateAnalytics(c.Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลวิเคราะห์สำเร็จ", analytics)
}

// GetDocuments - ดึงเอกสารประกอบทุนทั้งหมด
// @Summary      Get all documents of a scholar
// @Tags         scholars
// @Produce      json
// @Param        id path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id}/documents [get]
func (ctl *ScholarController) GetDocuments(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	documents, err := ctl.scholars.GetDocuments(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลเอกสารสำเร็จ", documents)
}

// UploadDocument - อัปโหลดเอกสารประกอบทุน (multipart field "file")
// @Summary      Upload a document for a scholar
// @Tags         scholars
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Scholar ID"
// @Param        file formData file   true "Document file"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id}/documents [post]
func (ctl *ScholarController) UploadDocument(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.FailedResponse(c, "ไม่พบไฟล์ที่อัปโหลด")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer file.Close()

	updated, err := ctl.scholars.UploadDocument(c.Context(), id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปโหลดเอกสารสำเร็จ!", updated)
}

// DeleteDocument - ลบเอกสารประกอบทุน
// @Summary      Delete a document from a scholar
// @Tags         scholars
// @Produce      json
// @Param        id         path string true "Scholar ID"
// @Param        documentId path string true "Document ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar/{id}/documents/{documentId} [delete]
func (ctl *ScholarController) DeleteDocument(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	updated, err := ctl.scholars.DeleteDocument(c.Context(), id, c.Params("documentId"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบทุนการศึกษา", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบเอกสารสำเร็จ!", updated)
}
