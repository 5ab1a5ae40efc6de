// Package seed fills a fresh database with the default public categories
// and a demo admin account.
package seed

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"savvy/internal/domain/entity"
	"savvy/internal/domain/repository"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
)

const (
	AdminName     = "Admin"
	AdminEmail    = "admin@admin.org"
	AdminPassword = "Pass12345"

	// DemoRecords is how many random records the admin receives per run.
	DemoRecords = 20
)

type defaultCategory struct {
	name        string
	description string
}

var defaultCategories = []defaultCategory{
	{"Food", "Groceries and everyday food"},
	{"Transport", "Fuel, transit fares, parking and taxis"},
	{"Health", "Medical bills and prescriptions"},
	{"Housing", "Rent, mortgage and property taxes"},
	{"Utilities", "Electricity, water, gas and internet"},
	{"Entertainment", "Movies, concerts and events"},
	{"Education", "Tuition, books and courses"},
	{"Insurance", "Health, car, home and life insurance"},
	{"Clothing", "Clothes, shoes and accessories"},
	{"Personal Care", "Haircuts, cosmetics and toiletries"},
	{"Subscriptions", "Streaming and software subscriptions"},
	{"Gifts", "Presents for birthdays and holidays"},
	{"Charity", "Donations to charitable causes"},
	{"Travel", "Flights, hotels and holidays"},
	{"Dining Out", "Restaurants, cafes and takeout"},
	{"Fitness", "Gym memberships and sports gear"},
	{"Childcare", "Daycare, babysitting and school"},
	{"Pets", "Pet food, vet bills and supplies"},
	{"Loans", "Loan and credit card repayments"},
	{"Savings", "Transfers to savings or investments"},
	{"Business", "Work-related expenses"},
	{"Miscellaneous", "Anything that fits nowhere else"},
	{"Home Improvement", "Repairs, furniture and renovation"},
	{"Alcohol/Tobacco", "Drinks and tobacco products"},
	{"Hobbies", "Crafts, games and other hobbies"},
}

// Seeder writes demo data through the repository layer.
type Seeder struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	records    repository.RecordRepository
	hasher     service.PasswordHasher
	logger     *slog.Logger
	rand       *rand.Rand
	now        func() time.Time
}

func NewSeeder(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	records repository.RecordRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:      users,
		categories: categories,
		records:    records,
		hasher:     hasher,
		logger:     logger,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run seeds categories, the admin user and the admin's demo records.
func (s *Seeder) Run(ctx context.Context) error {
	if _, err := s.PublicCategories(ctx); err != nil {
		return err
	}
	admin, err := s.Admin(ctx)
	if err != nil {
		return err
	}

	return s.Records(ctx, admin, DemoRecords)
}

// PublicCategories inserts the default set unless any public category
// already exists. It returns the number inserted.
func (s *Seeder) PublicCategories(ctx context.Context) (int, error) {
	existing, err := s.publicCategories(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		s.logger.Info("Public categories already present, skipping", slog.Int("count", len(existing)))

		return 0, nil
	}

	for _, def := range defaultCategories {
		description := def.description
		category := &entity.Category{Name: def.name, Description: &description}
		if err := s.categories.Create(ctx, category); err != nil {
			return 0, errors.Wrapf(err, "failed to seed category %q", def.name)
		}
	}
	s.logger.Info("Seeded public categories", slog.Int("count", len(defaultCategories)))

	return len(defaultCategories), nil
}

// Admin returns the admin user, creating it on first run.
func (s *Seeder) Admin(ctx context.Context) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, AdminEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up admin user")
	}

	user, err = entity.NewUser(ctx, s.hasher, AdminName, AdminEmail, AdminPassword, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create admin user")
	}
	s.logger.Info("Created admin user", slog.String("email", AdminEmail))

	return user, nil
}

// Records adds n random records for owner across the public categories.
func (s *Seeder) Records(ctx context.Context, owner *entity.User, n int) error {
	categories, err := s.publicCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return errors.New("no public categories to attach records to")
	}

	for range n {
		category := categories[s.rand.IntN(len(categories))]
		record, err := entity.NewRecord(owner.ID, category, s.rand.Int64N(1000)+1, s.randomLetters(10, 30), s.now())
		if err != nil {
			return err
		}
		if err := s.records.Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to seed record")
		}
	}
	s.logger.Info("Seeded demo records", slog.Int("count", n), slog.Int64("user_id", owner.ID))

	return nil
}

// publicCategories lists what an owner-less user would see, which is
// exactly the public set since store ids start at 1.
func (s *Seeder) publicCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.categories.FindVisibleToUser(ctx, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list public categories")
	}

	return categories, nil
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (s *Seeder) randomLetters(minLen, maxLen int) string {
	b := make([]byte, minLen+s.rand.IntN(maxLen-minLen+1))
	for i := range b {
		b[i] = letters[s.rand.IntN(len(letters))]
	}

	return string(b)
}
