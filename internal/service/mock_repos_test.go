package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.PhoneNumber == user.PhoneNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("u-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phoneNumber string) (*model.User, error) {
	for _, u := range m.users {
		if u.PhoneNumber == phoneNumber {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock ShiftDayRepository ──

type mockShiftDayRepo struct {
	days map[string]*model.ShiftDay // userID|stringDate → record
	seq  int
}

func newMockShiftDayRepo() *mockShiftDayRepo {
	return &mockShiftDayRepo{days: make(map[string]*model.ShiftDay)}
}

func shiftDayKey(userID, stringDate string) string {
	return userID + "|" + stringDate
}

func (m *mockShiftDayRepo) BatchCreate(_ context.Context, days []*model.ShiftDay) error {
	for _, d := range days {
		if _, exists := m.days[shiftDayKey(d.UserID, d.StringDate)]; exists {
			return gorm.ErrDuplicatedKey
		}
	}
	for _, d := range days {
		if d.ShiftDayID == "" {
			m.seq++
			d.ShiftDayID = fmt.Sprintf("sd-%d", m.seq)
		}
		m.days[shiftDayKey(d.UserID, d.StringDate)] = d
	}
	return nil
}

func (m *mockShiftDayRepo) GetByUserAndDate(_ context.Context, userID, stringDate string) (*model.ShiftDay, error) {
	if d, ok := m.days[shiftDayKey(userID, stringDate)]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftDayRepo) ListByUserMonth(_ context.Context, userID string, year, month int) ([]model.ShiftDay, error) {
	var result []model.ShiftDay
	for _, d := range m.days {
		if d.UserID == userID && d.Year == year && d.Month == month {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day < result[j].Day })
	return result, nil
}

func (m *mockShiftDayRepo) ListByMonth(_ context.Context, year, month int) ([]model.ShiftDay, error) {
	var result []model.ShiftDay
	for _, d := range m.days {
		if d.Year == year && d.Month == month {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UserID != result[j].UserID {
			return result[i].UserID < result[j].UserID
		}
		return result[i].Day < result[j].Day
	})
	return result, nil
}

func (m *mockShiftDayRepo) ListAssignedByUserRange(_ context.Context, userID string, fromStringDate string) ([]model.ShiftDay, error) {
	var result []model.ShiftDay
	for _, d := range m.days {
		if d.UserID == userID && d.StringDate >= fromStringDate && d.Any() {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StringDate < result[j].StringDate })
	return result, nil
}

func (m *mockShiftDayRepo) CountAssigned(_ context.Context, userID string, year, month int) (int64, error) {
	var count int64
	for _, d := range m.days {
		if d.UserID == userID && d.Year == year && d.Month == month && d.Any() {
			count++
		}
	}
	return count, nil
}

func (m *mockShiftDayRepo) Update(_ context.Context, day *model.ShiftDay) error {
	m.days[shiftDayKey(day.UserID, day.StringDate)] = day
	return nil
}

// ── Mock EditRequestRepository ──

type mockEditRequestRepo struct {
	requests map[string]*model.EditRequest
	seq      int
}

func newMockEditRequestRepo() *mockEditRequestRepo {
	return &mockEditRequestRepo{requests: make(map[string]*model.EditRequest)}
}

func (m *mockEditRequestRepo) Create(_ context.Context, req *model.EditRequest) error {
	if req.EditRequestID == "" {
		m.seq++
		req.EditRequestID = fmt.Sprintf("er-%d", m.seq)
	}
	m.requests[req.EditRequestID] = req
	return nil
}

func (m *mockEditRequestRepo) GetByID(_ context.Context, id string) (*model.EditRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEditRequestRepo) Update(_ context.Context, req *model.EditRequest) error {
	m.requests[req.EditRequestID] = req
	return nil
}

func (m *mockEditRequestRepo) ListByUser(_ context.Context, userID string) ([]model.EditRequest, error) {
	var result []model.EditRequest
	for _, r := range m.requests {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestedAt.After(result[j].RequestedAt) })
	return result, nil
}

func (m *mockEditRequestRepo) ListPending(_ context.Context, offset, limit int) ([]model.EditRequest, int64, error) {
	var pending []model.EditRequest
	for _, r := range m.requests {
		if !r.IsApproved {
			pending = append(pending, *r)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].RequestedAt.Before(pending[j].RequestedAt) })
	total := int64(len(pending))
	if offset >= len(pending) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end], total, nil
}

// ── Mock MonthControlRepository ──

type mockMonthControlRepo struct {
	controls map[string]*model.MonthEditControl
	seq      int
}

func newMockMonthControlRepo() *mockMonthControlRepo {
	return &mockMonthControlRepo{controls: make(map[string]*model.MonthEditControl)}
}

func controlKey(userID string, year, month int) string {
	return fmt.Sprintf("%s|%d|%d", userID, year, month)
}

func (m *mockMonthControlRepo) Create(_ context.Context, control *model.MonthEditControl) error {
	key := controlKey(control.UserID, control.Year, control.Month)
	if _, exists := m.controls[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if control.ControlID == "" {
		m.seq++
		control.ControlID = fmt.Sprintf("mc-%d", m.seq)
	}
	m.controls[key] = control
	return nil
}

func (m *mockMonthControlRepo) GetByUserMonth(_ context.Context, userID string, year, month int) (*model.MonthEditControl, error) {
	if c, ok := m.controls[controlKey(userID, year, month)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMonthControlRepo) GetByUserMonthForUpdate(ctx context.Context, userID string, year, month int) (*model.MonthEditControl, error) {
	return m.GetByUserMonth(ctx, userID, year, month)
}

func (m *mockMonthControlRepo) Update(_ context.Context, control *model.MonthEditControl) error {
	m.controls[controlKey(control.UserID, control.Year, control.Month)] = control
	return nil
}

// ── Mock DiscountRepository ──

type mockDiscountRepo struct {
	discounts map[string]*model.Discount
	seq       int
}

func newMockDiscountRepo() *mockDiscountRepo {
	return &mockDiscountRepo{discounts: make(map[string]*model.Discount)}
}

func (m *mockDiscountRepo) Create(_ context.Context, discount *model.Discount) error {
	key := controlKey(discount.UserID, discount.Year, discount.Month)
	if _, exists := m.discounts[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if discount.DiscountID == "" {
		m.seq++
		discount.DiscountID = fmt.Sprintf("dc-%d", m.seq)
	}
	m.discounts[key] = discount
	return nil
}

func (m *mockDiscountRepo) GetByUserMonth(_ context.Context, userID string, year, month int) (*model.Discount, error) {
	if d, ok := m.discounts[controlKey(userID, year, month)]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscountRepo) ListByMonth(_ context.Context, year, month int) ([]model.Discount, error) {
	var result []model.Discount
	for _, d := range m.discounts {
		if d.Year == year && d.Month == month {
			result = append(result, *d)
		}
	}
	return result, nil
}

// ── Mock VerificationCodeRepository ──

type mockCodeRepo struct {
	codes []*model.VerificationCode
	seq   int
}

func newMockCodeRepo() *mockCodeRepo {
	return &mockCodeRepo{}
}

func (m *mockCodeRepo) Create(_ context.Context, code *model.VerificationCode) error {
	if code.CodeID == "" {
		m.seq++
		code.CodeID = fmt.Sprintf("vc-%d", m.seq)
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *mockCodeRepo) GetLatestByPhone(_ context.Context, phone string) (*model.VerificationCode, error) {
	for i := len(m.codes) - 1; i >= 0; i-- {
		if m.codes[i].PhoneNumber == phone {
			return m.codes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCodeRepo) Update(_ context.Context, code *model.VerificationCode) error {
	for i, c := range m.codes {
		if c.CodeID == code.CodeID {
			m.codes[i] = code
		}
	}
	return nil
}

// ── Mock BankInfoRepository ──

type mockBankInfoRepo struct {
	infos []*model.BankInfo
	seq   int
}

func newMockBankInfoRepo() *mockBankInfoRepo {
	return &mockBankInfoRepo{}
}

func (m *mockBankInfoRepo) Create(_ context.Context, info *model.BankInfo) error {
	if info.BankInfoID == "" {
		m.seq++
		info.BankInfoID = fmt.Sprintf("bi-%d", m.seq)
	}
	m.infos = append(m.infos, info)
	return nil
}

func (m *mockBankInfoRepo) ListByUser(_ context.Context, userID string) ([]model.BankInfo, error) {
	var result []model.BankInfo
	for _, info := range m.infos {
		if info.UserID == userID {
			result = append(result, *info)
		}
	}
	return result, nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs []*model.Document
	seq  int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	if doc.DocumentID == "" {
		m.seq++
		doc.DocumentID = fmt.Sprintf("doc-%d", m.seq)
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockDocumentRepo) ListByUser(_ context.Context, userID string) ([]model.Document, error) {
	var result []model.Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			result = append(result, *doc)
		}
	}
	return result, nil
}

// ── 聚合构造 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		ShiftDay:     newMockShiftDayRepo(),
		EditRequest:  newMockEditRequestRepo(),
		MonthControl: newMockMonthControlRepo(),
		Discount:     newMockDiscountRepo(),
		Code:         newMockCodeRepo(),
		BankInfo:     newMockBankInfoRepo(),
		Document:     newMockDocumentRepo(),
	}
}
