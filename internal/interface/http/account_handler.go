package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/membernet/member-info-service/internal/application"
	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/pkg/response"
	"github.com/membernet/member-info-service/pkg/validation"
)

// AccountHandler exposes registration, email verification, login and the
// member/address/contact endpoints.
type AccountHandler struct {
	Registration *application.RegistrationService
	Verification *application.VerificationService
	Auth         *application.AuthService
	Members      *application.MemberService
	Logger       *logrus.Logger
}

func NewAccountHandler(reg *application.RegistrationService, ver *application.VerificationService, auth *application.AuthService, members *application.MemberService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Registration: reg, Verification: ver, Auth: auth, Members: members, Logger: logger}
}

type registerRequest struct {
	Username            string `json:"username" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Name                string `json:"name"`
	NameVisible         bool   `json:"name_visible"`
	NameLast            string `json:"name_last"`
	NameLastVisible     bool   `json:"name_last_visible"`
	Status              string `json:"status"`
	UserPoints          int    `json:"user_points"`
	MemberType          string `json:"member_type"`
	ProfileIntroduction string `json:"profile_introduction"`
	ParentUsername      string `json:"parent_member_username"`
}

type verifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type addressRequest struct {
	AddressID       int64  `json:"address_id"`
	Address1        string `json:"address1"`
	Address2        string `json:"address2"`
	Address3        string `json:"address3"`
	AddressType     string `json:"address_type"`
	PostCode        string `json:"post_code"`
	City            string `json:"city"`
	State           string `json:"state"`
	RegionalCouncil string `json:"regional_council"`
	Country         int    `json:"country"`
	PublicPrivate   bool   `json:"public_private"`
}

type contactRequest struct {
	ContactID     int64  `json:"contact_id"`
	ContactType   string `json:"contact_type" binding:"required,oneof=Email Phone"`
	ContactDetail string `json:"contact_detail" binding:"required"`
	PublicPrivate bool   `json:"public_private"`
	Notes         string `json:"notes"`
}

type updateProfileRequest struct {
	Username            string `json:"username"`
	Name                string `json:"name"`
	NameVisible         bool   `json:"name_visible"`
	NameLast            string `json:"name_last"`
	NameLastVisible     bool   `json:"name_last_visible"`
	Status              string `json:"status"`
	UserPoints          int    `json:"user_points"`
	MemberType          string `json:"member_type"`
	ProfileIntroduction string `json:"profile_introduction"`
}

type updateMemberInfoRequest struct {
	updateProfileRequest
	Addresses []addressRequest `json:"addresses"`
}

// Register POST /api/account/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m := &entity.Member{
		Username:            req.Username,
		Name:                req.Name,
		NameVisible:         req.NameVisible,
		NameLast:            req.NameLast,
		NameLastVisible:     req.NameLastVisible,
		Status:              req.Status,
		UserPoints:          req.UserPoints,
		MemberType:          req.MemberType,
		ProfileIntroduction: req.ProfileIntroduction,
	}
	result, err := h.Registration.Register(c.Request.Context(), m, req.Email, req.ParentUsername)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, result.Message, nil)
		return
	}
	if !result.OK {
		response.Error[any](c, http.StatusBadRequest, result.Message, nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": true}, "registration successful, check your email for the verification code", nil)
}

// VerifyEmail POST /api/account/verify-email
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	contact, err := h.Verification.VerifyEmailCode(c.Request.Context(), req.Code)
	if errors.Is(err, application.ErrCodeNotFound) {
		response.Error[any](c, http.StatusNotFound, "code not found", nil)
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "verification failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verified": contact.Verified}, "email verified", nil)
}

// Login POST /api/account/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, application.ErrMemberNotFound):
		response.Error[any](c, http.StatusNotFound, "no account matches that email", nil)
		return
	case errors.Is(err, application.ErrNotVerified):
		response.Error[any](c, http.StatusForbidden, "your email has not been verified yet", nil)
		return
	case err != nil:
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":     res.Token,
		"member_id": res.Member.MemberID,
		"username":  res.Member.Username,
	}, "login successful", map[string]any{"expires_at": res.ExpiresAt})
}

// GetUser GET /api/account/user (self)
func (h *AccountHandler) GetUser(c *gin.Context) {
	memberID := c.GetString("memberID")
	m, err := h.Members.GetMember(c.Request.Context(), memberID)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "member not found", nil)
		return
	}
	response.Success(c, http.StatusOK, memberJSON(m), "member", nil)
}

// GetUserInfo GET /api/account/user-info/:memberId (profile + addresses)
func (h *AccountHandler) GetUserInfo(c *gin.Context) {
	m, addrs, err := h.Members.GetMemberWithAddresses(c.Request.Context(), c.Param("memberId"))
	if errors.Is(err, application.ErrMemberNotFound) {
		response.Error[any](c, http.StatusNotFound, "member not found", nil)
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	out := memberJSON(m)
	addrOut := make([]gin.H, 0, len(addrs))
	for _, a := range addrs {
		addrOut = append(addrOut, addressJSON(a))
	}
	out["addresses"] = addrOut
	response.Success(c, http.StatusOK, out, "member info", nil)
}

// UpdateUser POST /api/account/update-user (self)
func (h *AccountHandler) UpdateUser(c *gin.Context) {
	memberID := c.GetString("memberID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Members.UpdateProfile(c.Request.Context(), memberID, profileInput(req))
	if errors.Is(err, application.ErrMemberNotFound) {
		response.Error[any](c, http.StatusNotFound, "member not found", nil)
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, memberJSON(m), "profile updated", nil)
}

// UpdateUserInfo POST /api/account/user-info/:memberId (profile + address batch)
func (h *AccountHandler) UpdateUserInfo(c *gin.Context) {
	memberID := c.Param("memberId")
	var req updateMemberInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	m, err := h.Members.UpdateProfile(ctx, memberID, profileInput(req.updateProfileRequest))
	if errors.Is(err, application.ErrMemberNotFound) {
		response.Error[any](c, http.StatusNotFound, "member not found", nil)
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	for _, ar := range req.Addresses {
		a := addressEntity(memberID, ar)
		if ar.AddressID == 0 {
			err = h.Members.CreateAddress(ctx, a)
		} else {
			err = h.Members.UpdateAddress(ctx, a)
		}
		if err != nil {
			response.Error[any](c, http.StatusInternalServerError, "address update failed", nil)
			return
		}
	}
	response.Success(c, http.StatusOK, memberJSON(m), "member info updated", nil)
}

// Search GET /api/members/search?q=&size=
func (h *AccountHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Members.Indexer.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// CreateAddress POST /api/account/create-address
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	memberID := c.GetString("memberID")
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a := addressEntity(memberID, req)
	a.PostDate = time.Now()
	if err := h.Members.CreateAddress(c.Request.Context(), a); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, addressJSON(a), "address created", nil)
}

// ListAddresses GET /api/account/get-address
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	memberID := c.GetString("memberID")
	addrs, err := h.Members.ListAddresses(c.Request.Context(), memberID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	out := make([]gin.H, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, addressJSON(a))
	}
	response.Success(c, http.StatusOK, out, "addresses", nil)
}

// GetAddress GET /api/account/get-address/:id
func (h *AccountHandler) GetAddress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid address id", nil)
		return
	}
	a, err := h.Members.GetAddress(c.Request.Context(), id)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "address not found", nil)
		return
	}
	response.Success(c, http.StatusOK, addressJSON(a), "address", nil)
}

// UpdateAddress POST /api/account/update-address
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	memberID := c.GetString("memberID")
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a := addressEntity(memberID, req)
	if err := h.Members.UpdateAddress(c.Request.Context(), a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "address not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, addressJSON(a), "address updated", nil)
}

// DeleteAddress DELETE /api/account/user-address/:id
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	memberID := c.GetString("memberID")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid address id", nil)
		return
	}
	if err := h.Members.DeleteAddress(c.Request.Context(), memberID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "address not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "address deleted", nil)
}

// CreateContact POST /api/account/create-connect
func (h *AccountHandler) CreateContact(c *gin.Context) {
	memberID := c.GetString("memberID")
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	contact := &entity.Contact{
		MemberID:      memberID,
		ContactType:   req.ContactType,
		ContactDetail: req.ContactDetail,
		PublicPrivate: req.PublicPrivate,
		Notes:         req.Notes,
		PostDate:      time.Now(),
	}
	if err := h.Members.CreateContact(c.Request.Context(), contact); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			response.Error[any](c, http.StatusBadRequest, "contact detail is already registered", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, contactJSON(contact), "contact created", nil)
}

// ListContacts GET /api/account/get-connect
func (h *AccountHandler) ListContacts(c *gin.Context) {
	memberID := c.GetString("memberID")
	contacts, err := h.Members.ListContacts(c.Request.Context(), memberID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	out := make([]gin.H, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, contactJSON(ct))
	}
	response.Success(c, http.StatusOK, out, "contacts", nil)
}

// GetContact GET /api/account/get-connect/:id
func (h *AccountHandler) GetContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid contact id", nil)
		return
	}
	ct, err := h.Members.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "contact not found", nil)
		return
	}
	response.Success(c, http.StatusOK, contactJSON(ct), "contact", nil)
}

// UpdateContact POST /api/account/update-connect
func (h *AccountHandler) UpdateContact(c *gin.Context) {
	memberID := c.GetString("memberID")
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ct, err := h.Members.UpdateContact(c.Request.Context(), memberID, req.ContactID, application.UpdateContactInput{
		ContactType:   req.ContactType,
		ContactDetail: req.ContactDetail,
		PublicPrivate: req.PublicPrivate,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, contactJSON(ct), "contact updated", nil)
}

// DeleteContact DELETE /api/account/user-connect/:id
func (h *AccountHandler) DeleteContact(c *gin.Context) {
	memberID := c.GetString("memberID")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid contact id", nil)
		return
	}
	if err := h.Members.DeleteContact(c.Request.Context(), memberID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "contact deleted", nil)
}

func profileInput(req updateProfileRequest) application.UpdateProfileInput {
	return application.UpdateProfileInput{
		Username:            req.Username,
		Name:                req.Name,
		NameVisible:         req.NameVisible,
		NameLast:            req.NameLast,
		NameLastVisible:     req.NameLastVisible,
		Status:              req.Status,
		UserPoints:          req.UserPoints,
		MemberType:          req.MemberType,
		ProfileIntroduction: req.ProfileIntroduction,
	}
}

func addressEntity(memberID string, req addressRequest) *entity.Address {
	return &entity.Address{
		AddressID:       req.AddressID,
		MemberID:        memberID,
		Address1:        req.Address1,
		Address2:        req.Address2,
		Address3:        req.Address3,
		AddressType:     req.AddressType,
		PostCode:        req.PostCode,
		City:            req.City,
		State:           req.State,
		RegionalCouncil: req.RegionalCouncil,
		Country:         req.Country,
		PublicPrivate:   req.PublicPrivate,
	}
}

func memberJSON(m *entity.Member) gin.H {
	return gin.H{
		"member_id":            m.MemberID,
		"username":             m.Username,
		"name":                 m.Name,
		"name_visible":         m.NameVisible,
		"name_last":            m.NameLast,
		"name_last_visible":    m.NameLastVisible,
		"status":               m.Status,
		"user_points":          m.UserPoints,
		"member_type":          m.MemberType,
		"profile_introduction": m.ProfileIntroduction,
		"parent_member_id":     m.ParentMemberID,
		"post_date":            m.PostDate,
	}
}

func addressJSON(a *entity.Address) gin.H {
	return gin.H{
		"address_id":       a.AddressID,
		"member_id":        a.MemberID,
		"address1":         a.Address1,
		"address2":         a.Address2,
		"address3":         a.Address3,
		"address_type":     a.AddressType,
		"post_code":        a.PostCode,
		"city":             a.City,
		"state":            a.State,
		"regional_council": a.RegionalCouncil,
		"country":          a.Country,
		"public_private":   a.PublicPrivate,
		"post_date":        a.PostDate,
	}
}

func contactJSON(ct *entity.Contact) gin.H {
	return gin.H{
		"contact_id":     ct.ContactID,
		"member_id":      ct.MemberID,
		"contact_type":   ct.ContactType,
		"contact_detail": ct.ContactDetail,
		"verified":       ct.Verified,
		"public_private": ct.PublicPrivate,
		"notes":          ct.Notes,
		"post_date":      ct.PostDate,
	}
}
