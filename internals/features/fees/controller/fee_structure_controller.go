// file: internals/features/fees/controller/fee_structure_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/fees/dto"
	"sekolahku_backend/internals/features/fees/model"
	"sekolahku_backend/internals/features/fees/service"
	helper "sekolahku_backend/internals/helpers"
)

type FeeStructureController struct {
	DB *gorm.DB
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db}
}

var validateFee = validator.New()

/* =======================================================
   FEE TYPES
======================================================= */

func (ctl *FeeStructureController) ListTypes(c *fiber.Ctx) error {
	var types []model.FeeTypeModel
	if err := ctl.DB.Order("name ASC").Find(&types).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list fee types")
	}
	resp := make([]dto.FeeTypeResponse, 0, len(types))
	for i := range types {
		resp = append(resp, dto.FromFeeTypeModel(&types[i]))
	}
	return helper.JsonOK(c, "Fee types retrieved", resp)
}

func (ctl *FeeStructureController) CreateType(c *fiber.Ctx) error {
	var req dto.CreateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return err
	}

	feeType := &model.FeeTypeModel{Name: req.Name, Description: req.Description}
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.FeeTypeModel{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Fee type name already exists")
		}
		return tx.Create(feeType).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee type")
	}
	return helper.JsonCreated(c, "Fee type created", dto.FromFeeTypeModel(feeType))
}

func (ctl *FeeStructureController) DeleteType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fee type id")
	}

	var count int64
	ctl.DB.Model(&model.FeeStructureModel{}).Where("fee_type_id = ?", id).Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Fee type is still used by fee structures")
	}

	res := ctl.DB.Delete(&model.FeeTypeModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee type")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee type not found")
	}
	return helper.JsonDeleted(c, "Fee type deleted", fiber.Map{"id": id})
}

/* =======================================================
   STRUCTURES
======================================================= */

func (ctl *FeeStructureController) resp(m *model.FeeStructureModel) dto.FeeStructureResponse {
	r := dto.FromFeeStructureModel(m, service.NetAmount(m.Amount, m.DiscountType, m.DiscountValue))
	ctl.DB.Table("classes").Select("name").Where("id = ?", m.ClassID).Scan(&r.ClassName)
	ctl.DB.Table("fee_types").Select("name").Where("id = ?", m.FeeTypeID).Scan(&r.FeeTypeName)
	return r
}

func (ctl *FeeStructureController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.Model(&model.FeeStructureModel{})
	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if feeTypeID := c.Query("fee_type_id"); feeTypeID != "" {
		q = q.Where("fee_type_id = ?", feeTypeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count fee structures")
	}

	var structures []model.FeeStructureModel
	if err := q.Order("due_date ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&structures).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list fee structures")
	}

	resp := make([]dto.FeeStructureResponse, 0, len(structures))
	for i := range structures {
		resp = append(resp, ctl.resp(&structures[i]))
	}
	return helper.JsonList(c, "Fee structures retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *FeeStructureController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return err
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid due date")
	}

	structure := &model.FeeStructureModel{
		ClassID:   uuid.MustParse(req.ClassID),
		FeeTypeID: uuid.MustParse(req.FeeTypeID),
		SessionID: uuid.MustParse(req.SessionID),
		Amount:    req.Amount,
		DueDate:   dueDate,
	}
	if req.DiscountType != nil {
		dt := model.DiscountType(*req.DiscountType)
		structure.DiscountType = &dt
	}
	if req.DiscountValue != nil {
		structure.DiscountValue = *req.DiscountValue
	}

	if err := service.ValidateDiscount(structure.Amount, structure.DiscountType, structure.DiscountValue); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.FeeStructureModel{}).
			Where("class_id = ? AND fee_type_id = ? AND session_id = ?",
				structure.ClassID, structure.FeeTypeID, structure.SessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Fee structure already exists for this class, type and session")
		}
		return tx.Create(structure).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee structure")
	}

	return helper.JsonCreated(c, "Fee structure created", ctl.resp(structure))
}

func (ctl *FeeStructureController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fee structure id")
	}

	var req dto.UpdateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return err
	}

	var structure model.FeeStructureModel
	if err := ctl.DB.First(&structure, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fee structure not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee structure")
	}

	if req.Amount != nil {
		structure.Amount = *req.Amount
	}
	if req.DiscountType != nil {
		dt := model.DiscountType(*req.DiscountType)
		structure.DiscountType = &dt
	}
	if req.DiscountValue != nil {
		structure.DiscountValue = *req.DiscountValue
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid due date")
		}
		structure.DueDate = dueDate
	}

	if err := service.ValidateDiscount(structure.Amount, structure.DiscountType, structure.DiscountValue); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.Save(&structure).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee structure")
	}
	return helper.JsonUpdated(c, "Fee structure updated", ctl.resp(&structure))
}

// Delete refuses once payments reference the structure.
func (ctl *FeeStructureController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fee structure id")
	}

	var count int64
	ctl.DB.Model(&model.FeePaymentModel{}).Where("fee_structure_id = ?", id).Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Fee structure already has payments and cannot be deleted")
	}

	res := ctl.DB.Delete(&model.FeeStructureModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee structure")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee structure not found")
	}
	return helper.JsonDeleted(c, "Fee structure deleted", fiber.Map{"id": id})
}
