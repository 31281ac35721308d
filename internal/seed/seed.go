// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	_ "embed"
	"fmt"
	"log"
	"math/rand"
	"time"

	"babel/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed languages.yml
var languagesYAML []byte

type languageCatalog struct {
	Languages []string `yaml:"languages"`
}

// Options controls the shape of the generated dataset.
type Options struct {
	Users          int
	FriendDensity  float64 // probability that any user pair becomes friends
	PendingDensity float64 // probability of a pending request between non-friends
	Password       string  // login password for all seeded accounts
}

// DefaultOptions returns a small but connected demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:          25,
		FriendDensity:  0.15,
		PendingDensity: 0.05,
		Password:       "secret1",
	}
}

// Seeder builds demo users and friendship graphs.
type Seeder struct {
	db        *gorm.DB
	opts      Options
	rng       *rand.Rand
	languages []string
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	var catalog languageCatalog
	if err := yaml.Unmarshal(languagesYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse language catalog: %w", err)
	}
	if len(catalog.Languages) < 2 {
		return nil, fmt.Errorf("language catalog needs at least two languages")
	}

	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:        db,
		opts:      opts,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		languages: catalog.Languages,
	}, nil
}

// languagePair picks a native and a distinct learning language.
func (s *Seeder) languagePair() (string, string) {
	native := s.languages[s.rng.Intn(len(s.languages))]
	learning := native
	for learning == native {
		learning = s.languages[s.rng.Intn(len(s.languages))]
	}
	return native, learning
}

// CreateUser persists one onboarded demo user.
func (s *Seeder) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	native, learning := s.languagePair()
	user := &models.User{
		Email:            gofakeit.Email(),
		Password:         string(hash),
		FullName:         gofakeit.Name(),
		Bio:              gofakeit.Sentence(8),
		ProfilePic:       fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", s.rng.Intn(100)+1),
		NativeLanguage:   native,
		LearningLanguage: learning,
		Location:         fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		IsOnboarded:      true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// connect establishes an accepted friendship between two users, writing the
// request row and both edges the same way the live accept path does.
func (s *Seeder) connect(a, b *models.User) error {
	req := &models.FriendRequest{
		SenderID:    a.ID,
		RecipientID: b.ID,
		Status:      models.FriendRequestStatusAccepted,
	}
	if err := s.db.Create(req).Error; err != nil {
		return err
	}
	edges := []models.FriendEdge{
		{UserID: a.ID, FriendID: b.ID},
		{UserID: b.ID, FriendID: a.ID},
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}

// Run populates the database. Existing rows are left alone; the unique
// indexes keep re-runs from duplicating pairs.
func (s *Seeder) Run() error {
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	var friendships, pending int
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			roll := s.rng.Float64()
			switch {
			case roll < s.opts.FriendDensity:
				if err := s.connect(users[i], users[j]); err != nil {
					return fmt.Errorf("seed friendship: %w", err)
				}
				friendships++
			case roll < s.opts.FriendDensity+s.opts.PendingDensity:
				req := &models.FriendRequest{
					SenderID:    users[i].ID,
					RecipientID: users[j].ID,
					Status:      models.FriendRequestStatusPending,
				}
				if err := s.db.Create(req).Error; err != nil {
					return fmt.Errorf("seed pending request: %w", err)
				}
				pending++
			}
		}
	}

	log.Printf("Seeded %d users, %d friendships, %d pending requests", len(users), friendships, pending)
	return nil
}
