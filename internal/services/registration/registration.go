package registration

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/profile"
)

var ErrNotEligible = errors.New("profile is not eligible for a permanent registration number")

// Service issues permanent registration numbers. A number is only granted
// once the stricter completion gate passes: every mandatory field filled,
// matching bank accounts, identity file uploaded and verified.
type Service struct {
	DB  *gorm.DB
	Key string
}

func NewService(db *gorm.DB, key string) *Service {
	return &Service{DB: db, Key: key}
}

// Issue assigns a permanent registration number to the profile inside the
// given transaction. Idempotent: an already-issued number is returned as is.
func (s *Service) Issue(tx *gorm.DB, p *models.Profile) (string, error) {
	if p.PermanentRegistrationNo != "" {
		return p.PermanentRegistrationNo, nil
	}

	st := profile.Calculate(profile.RecordOf(p), p.Role)
	if !st.EligibleForPermanentID {
		return "", ErrNotEligible
	}

	no, err := s.generate(p.UserID)
	if err != nil {
		return "", err
	}

	p.PermanentRegistrationNo = no
	if err := tx.Model(&models.Profile{}).
		Where("id = ?", p.ID).
		Update("permanent_registration_no", no).Error; err != nil {
		return "", err
	}
	return no, nil
}

// generate produces an opaque number by encrypting the user id, so the
// visible registration number leaks nothing about signup order.
func (s *Service) generate(userID uuid.UUID) (string, error) {
	k := []byte(s.Key)
	if len(k) != 16 && len(k) != 24 && len(k) != 32 {
		return "", fmt.Errorf("invalid key length: %d (must be 16/24/32)", len(k))
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return "", err
	}

	plaintext := userID[:]
	ciphertext := make([]byte, aes.BlockSize+len(plaintext))

	iv := ciphertext[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to read random iv: %w", err)
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], plaintext)

	enc := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(ciphertext)
	return "PRN-" + strings.ToUpper(enc[:16]), nil
}
