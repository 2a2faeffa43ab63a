package service

import (
	"strings"

	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/repository"
)

// AddressInput 地址创建/更新输入
type AddressInput struct {
	Title    string
	Receiver string
	Province string
	City     string
	District string
	Place    string
	Mobile   string
	Tel      string
	Email    string
}

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository, userRepo repository.UserRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
	}
}

// ListByUser 获取用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// Create 创建地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address := &models.Address{
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Receiver: strings.TrimSpace(input.Receiver),
		Province: strings.TrimSpace(input.Province),
		City:     strings.TrimSpace(input.City),
		District: strings.TrimSpace(input.District),
		Place:    strings.TrimSpace(input.Place),
		Mobile:   strings.TrimSpace(input.Mobile),
		Tel:      strings.TrimSpace(input.Tel),
		Email:    strings.TrimSpace(input.Email),
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	address.Title = strings.TrimSpace(input.Title)
	address.Receiver = strings.TrimSpace(input.Receiver)
	address.Province = strings.TrimSpace(input.Province)
	address.City = strings.TrimSpace(input.City)
	address.District = strings.TrimSpace(input.District)
	address.Place = strings.TrimSpace(input.Place)
	address.Mobile = strings.TrimSpace(input.Mobile)
	address.Tel = strings.TrimSpace(input.Tel)
	address.Email = strings.TrimSpace(input.Email)
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, addressID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(addressID, userID)
}

// SetDefault 设置默认地址
func (s *AddressService) SetDefault(userID, addressID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.DefaultAddressID = &address.ID
	return s.userRepo.Update(user)
}

func validateAddressInput(input AddressInput) error {
	if strings.TrimSpace(input.Receiver) == "" ||
		strings.TrimSpace(input.Province) == "" ||
		strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.District) == "" ||
		strings.TrimSpace(input.Place) == "" ||
		strings.TrimSpace(input.Mobile) == "" {
		return ErrAddressInvalid
	}
	return nil
}
