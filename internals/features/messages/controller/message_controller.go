// file: internals/features/messages/controller/message_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/messages/dto"
	"sekolahku_backend/internals/features/messages/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

var validateMessage = validator.New()

func (ctl *MessageController) resp(m *model.MessageModel, viewer uuid.UUID) dto.MessageResponse {
	r := dto.FromMessageModel(m, viewer)
	ctl.DB.Table("users").Select("user_name").Where("id = ?", m.SenderID).Scan(&r.SenderName)
	ctl.DB.Table("users").Select("user_name").Where("id = ?", m.RecipientID).Scan(&r.RecipientName)
	return r
}

/* =======================================================
   SEND
======================================================= */

// Send delivers a message. A reply joins its parent's thread; a fresh
// message starts a thread of its own (thread id equals its own id).
func (ctl *MessageController) Send(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateMessage.Struct(req); err != nil {
		return err
	}

	recipientID := uuid.MustParse(req.RecipientID)
	if recipientID == p.UserID {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot message yourself")
	}

	msg := &model.MessageModel{
		SenderID:    p.UserID,
		RecipientID: recipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Table("users").
			Where("id = ? AND is_active = true AND deleted_at IS NULL", recipientID).
			Count(&active).Error; err != nil {
			return err
		}
		if active == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Recipient not found or inactive")
		}

		if req.ParentID != nil {
			parentID := uuid.MustParse(*req.ParentID)
			var parent model.MessageModel
			if err := tx.First(&parent, "id = ?", parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Parent message not found")
				}
				return err
			}
			if parent.SenderID != p.UserID && parent.RecipientID != p.UserID {
				return fiber.NewError(fiber.StatusForbidden, "You are not part of this conversation")
			}
			msg.ParentID = &parent.ID
			msg.ThreadID = parent.ThreadID
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
			return nil
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// A root message anchors its own thread.
		msg.ThreadID = msg.ID
		return tx.Model(msg).UpdateColumn("thread_id", msg.ID).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
	}

	return helper.JsonCreated(c, "Message sent", ctl.resp(msg, p.UserID))
}

/* =======================================================
   FOLDERS
======================================================= */

func (ctl *MessageController) listFolder(c *fiber.Ctx, build func(p helperAuth.Principal) *gorm.DB, title string) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)
	q := build(p)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count messages")
	}

	var msgs []model.MessageModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&msgs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list messages")
	}

	resp := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, ctl.resp(&msgs[i], p.UserID))
	}
	return helper.JsonList(c, title, resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *MessageController) Inbox(c *fiber.Ctx) error {
	return ctl.listFolder(c, func(p helperAuth.Principal) *gorm.DB {
		return ctl.DB.Model(&model.MessageModel{}).
			Where("recipient_id = ? AND recipient_deleted = false AND recipient_archived = false", p.UserID)
	}, "Inbox retrieved")
}

func (ctl *MessageController) Sent(c *fiber.Ctx) error {
	return ctl.listFolder(c, func(p helperAuth.Principal) *gorm.DB {
		return ctl.DB.Model(&model.MessageModel{}).
			Where("sender_id = ? AND sender_deleted = false AND sender_archived = false", p.UserID)
	}, "Sent messages retrieved")
}

func (ctl *MessageController) Archived(c *fiber.Ctx) error {
	return ctl.listFolder(c, func(p helperAuth.Principal) *gorm.DB {
		return ctl.DB.Model(&model.MessageModel{}).
			Where("(recipient_id = ? AND recipient_deleted = false AND recipient_archived = true)"+
				" OR (sender_id = ? AND sender_deleted = false AND sender_archived = true)", p.UserID, p.UserID)
	}, "Archived messages retrieved")
}

func (ctl *MessageController) Starred(c *fiber.Ctx) error {
	return ctl.listFolder(c, func(p helperAuth.Principal) *gorm.DB {
		return ctl.DB.Model(&model.MessageModel{}).
			Where("(recipient_id = ? AND recipient_deleted = false AND recipient_starred = true)"+
				" OR (sender_id = ? AND sender_deleted = false AND sender_starred = true)", p.UserID, p.UserID)
	}, "Starred messages retrieved")
}

// Thread returns a conversation oldest first, hiding rows the viewer
// deleted from their side.
func (ctl *MessageController) Thread(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	threadID, err := uuid.Parse(c.Params("threadId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	var msgs []model.MessageModel
	if err := ctl.DB.
		Where("thread_id = ?", threadID).
		Where("(sender_id = ? AND sender_deleted = false) OR (recipient_id = ? AND recipient_deleted = false)",
			p.UserID, p.UserID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load thread")
	}
	if len(msgs) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Thread not found")
	}

	resp := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, ctl.resp(&msgs[i], p.UserID))
	}
	return helper.JsonOK(c, "Thread retrieved", resp)
}

func (ctl *MessageController) UnreadCount(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var unread int64
	if err := ctl.DB.Model(&model.MessageModel{}).
		Where("recipient_id = ? AND is_read = false AND recipient_deleted = false", p.UserID).
		Count(&unread).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count unread messages")
	}
	return helper.JsonOK(c, "Unread count", dto.UnreadCountResponse{Unread: unread})
}

/* =======================================================
   FLAGS
======================================================= */

func (ctl *MessageController) loadForParticipant(c *fiber.Ctx) (*model.MessageModel, helperAuth.Principal, error) {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return nil, p, err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, p, fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	var msg model.MessageModel
	if err := ctl.DB.First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, p, fiber.NewError(fiber.StatusNotFound, "Message not found")
		}
		return nil, p, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch message")
	}

	isSender, isRecipient := msg.SideOf(p.UserID)
	if !isSender && !isRecipient {
		return nil, p, fiber.NewError(fiber.StatusNotFound, "Message not found")
	}
	return &msg, p, nil
}

// MarkRead is recipient-only.
func (ctl *MessageController) MarkRead(c *fiber.Ctx) error {
	msg, p, err := ctl.loadForParticipant(c)
	if err != nil {
		return err
	}
	if msg.RecipientID != p.UserID {
		return fiber.NewError(fiber.StatusForbidden, "Only the recipient can mark a message read")
	}
	if !msg.IsRead {
		now := time.Now()
		msg.IsRead = true
		msg.ReadAt = &now
		if err := ctl.DB.Model(msg).Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark message read")
		}
	}
	return helper.JsonUpdated(c, "Message marked read", ctl.resp(msg, p.UserID))
}

// ToggleStar flips the viewer's star.
func (ctl *MessageController) ToggleStar(c *fiber.Ctx) error {
	msg, p, err := ctl.loadForParticipant(c)
	if err != nil {
		return err
	}

	column := "recipient_starred"
	value := !msg.RecipientStarred
	if msg.SenderID == p.UserID {
		column = "sender_starred"
		value = !msg.SenderStarred
		msg.SenderStarred = value
	} else {
		msg.RecipientStarred = value
	}

	if err := ctl.DB.Model(msg).UpdateColumn(column, value).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update star")
	}
	return helper.JsonUpdated(c, "Star updated", ctl.resp(msg, p.UserID))
}

// ToggleArchive flips the viewer's archive flag.
func (ctl *MessageController) ToggleArchive(c *fiber.Ctx) error {
	msg, p, err := ctl.loadForParticipant(c)
	if err != nil {
		return err
	}

	column := "recipient_archived"
	value := !msg.RecipientArchived
	if msg.SenderID == p.UserID {
		column = "sender_archived"
		value = !msg.SenderArchived
		msg.SenderArchived = value
	} else {
		msg.RecipientArchived = value
	}

	if err := ctl.DB.Model(msg).UpdateColumn(column, value).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update archive flag")
	}
	return helper.JsonUpdated(c, "Archive flag updated", ctl.resp(msg, p.UserID))
}

// Delete hides the message from the viewer's side. Once both sides
// have deleted it the row is soft-deleted for good.
func (ctl *MessageController) Delete(c *fiber.Ctx) error {
	msg, p, err := ctl.loadForParticipant(c)
	if err != nil {
		return err
	}

	if msg.SenderID == p.UserID {
		msg.SenderDeleted = true
	}
	if msg.RecipientID == p.UserID {
		msg.RecipientDeleted = true
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(msg).Updates(map[string]any{
			"sender_deleted":    msg.SenderDeleted,
			"recipient_deleted": msg.RecipientDeleted,
		}).Error; err != nil {
			return err
		}
		if msg.SenderDeleted && msg.RecipientDeleted {
			return tx.Delete(msg).Error
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete message")
	}

	return helper.JsonDeleted(c, "Message deleted", fiber.Map{"id": msg.ID})
}
