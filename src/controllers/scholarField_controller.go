package controllers

import (
	"errors"
	"strings"

	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/scholarfields"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ScholarFieldController struct {
	fields *scholarfields.Service
}

func NewScholarFieldController(svc *scholarfields.Service) *ScholarFieldController {
	return &ScholarFieldController{fields: svc}
}

// Create - สร้าง field ใหม่ให้ทุน
// @Summary      Create a new field for a scholar
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        body body models.CreateFieldPayload true "Field data"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /scholar-field [post]
func (ctl *ScholarFieldController) Create(c *fiber.Ctx) error {
	var payload models.CreateFieldPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	field, err := ctl.fields.Create(c.Context(), payload)
	if err != nil {
		if isInvalidIDError(err) || isDuplicateQuestionError(err) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "สร้างฟิลด์สำเร็จ!", field)
}

// GetByScholarID - ดึง field ทั้งหมดของทุน เรียงตาม order
// @Summary      Get all fields of a scholar
// @Tags         scholar-fields
// @Produce      json
// @Param        scholarId path string true "Scholar ID"
// @Success      200  {object}  models.BaseResponse
// @Router       /scholar-field/scholar/{scholarId} [get]
func (ctl *ScholarFieldController) GetByScholarID(c *fiber.Ctx) error {
	scholarID, err := primitive.ObjectIDFromHex(c.Params("scholarId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ทุนการศึกษาไม่ถูกต้อง")
	}

	fields, err := ctl.fields.GetByScholarID(c.Context(), scholarID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลฟิลด์สำเร็จ", fields)
}

// GetByID - ดึง field ตาม ID
// @Summary      Get a field by ID
// @Tags         scholar-fields
// @Produce      json
// @Param        id path string true "Field ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{id} [get]
func (ctl *ScholarFieldController) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	field, err := ctl.fields.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลฟิลด์สำเร็จ", field)
}

// Update - แก้ไข field (trigger ประเมินสถานะนักเรียนใหม่)
// @Summary      Update a field
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        id   path string true "Field ID"
// @Param        body body models.UpdateFieldPayload true "Field data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{id} [put]
func (ctl *ScholarFieldController) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	var payload models.UpdateFieldPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.fields.Update(c.Context(), id, payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		if isDuplicateQuestionError(err) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปเดตฟิลด์สำเร็จ!", updated)
}

// Delete - ลบ field (trigger ประเมินสถานะนักเรียนใหม่)
// @Summary      Delete a field
// @Tags         scholar-fields
// @Produce      json
// @Param        id path string true "Field ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{id} [delete]
func (ctl *ScholarFieldController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	deleted, err := ctl.fields.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบฟิลด์สำเร็จ!", deleted)
}

// ReorderFields - เรียงลำดับ field ของทุนใหม่ทั้งชุด
// @Summary      Reorder fields of a scholar
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        body body models.ReorderFieldsPayload true "Field order list"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /scholar-field/reorder [post]
func (ctl *ScholarFieldController) ReorderFields(c *fiber.Ctx) error {
	var payload models.ReorderFieldsPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	if err := ctl.fields.ReorderFields(c.Context(), payload); err != nil {
		if isInvalidIDError(err) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เรียงลำดับฟิลด์สำเร็จ!", nil)
}

// AddQuestion - เพิ่มคำถามเข้า field
// @Summary      Add a question to a field
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Field ID"
// @Param        body    body models.Question true "Question data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{fieldId}/question [post]
func (ctl *ScholarFieldController) AddQuestion(c *fiber.Ctx) error {
	fieldID, err := primitive.ObjectIDFromHex(c.Params("fieldId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(question); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.fields.AddQuestion(c.Context(), fieldID, question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		if isDuplicateQuestionError(err) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เพิ่มคำถามสำเร็จ!", updated)
}

// UpdateQuestion - แก้ไขคำถามเฉพาะ attribute ที่ส่งมา
// @Summary      Update a question in a field
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        fieldId    path string true "Field ID"
// @Param        questionId path string true "Question ID"
// @Param        body       body models.UpdateQuestionPayload true "Question data"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{fieldId}/question/{questionId} [put]
func (ctl *ScholarFieldController) UpdateQuestion(c *fiber.Ctx) error {
	fieldID, err := primitive.ObjectIDFromHex(c.Params("fieldId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	questionID := c.Params("questionId")
	if questionID == "" {
		return utils.FailedResponse(c, "ไม่พบ ID คำถาม")
	}

	var payload models.UpdateQuestionPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.fields.UpdateQuestion(c.Context(), fieldID, questionID, payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์หรือคำถาม", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "อัปเดตคำถามสำเร็จ!", updated)
}

// RemoveQuestion - ลบคำถามออกจาก field
// @Summary      Remove a question from a field
// @Tags         scholar-fields
// @Produce      json
// @Param        fieldId    path string true "Field ID"
// @Param        questionId path string true "Question ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/{fieldId}/question/{questionId} [delete]
func (ctl *ScholarFieldController) RemoveQuestion(c *fiber.Ctx) error {
	fieldID, err := primitive.ObjectIDFromHex(c.Params("fieldId"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ฟิลด์ไม่ถูกต้อง")
	}

	questionID := c.Params("questionId")
	if questionID == "" {
		return utils.FailedResponse(c, "ไม่พบ ID คำถาม")
	}

	updated, err := ctl.fields.RemoveQuestion(c.Context(), fieldID, questionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบคำถามสำเร็จ!", updated)
}

// ReorderQuestions - เรียงลำดับคำถามใน field ใหม่
// @Summary      Reorder questions in a field
// @Tags         scholar-fields
// @Accept       json
// @Produce      json
// @Param        body body models.ReorderQuestionsPayload true "Question order list"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /scholar-field/question/reorder [post]
func (ctl *ScholarFieldController) ReorderQuestions(c *fiber.Ctx) error {
	var payload models.ReorderQuestionsPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.fields.ReorderQuestions(c.Context(), payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบฟิลด์", fiber.StatusNotFound)
		}
		if isInvalidIDError(err) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เรียงลำดับคำถามสำเร็จ!", updated)
}

func isInvalidIDError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid")
}

func isDuplicateQuestionError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate question id")
}
