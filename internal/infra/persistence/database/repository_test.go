package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/errors"
	"savvy/internal/infra/persistence/database"
	"savvy/internal/testutil"
)

type RepositorySuite struct {
	suite.Suite

	ctx        context.Context
	db         *gorm.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	records    repository.RecordRepository
	txManager  repository.TransactionManager
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T(), testutil.NewConfig())
	s.users = database.NewUserRepository(s.db)
	s.categories = database.NewCategoryRepository(s.db)
	s.records = database.NewRecordRepository(s.db)
	s.txManager = database.NewTransactionManager(s.db)
}

func (s *RepositorySuite) createUser(email string) *entity.User {
	now := time.Now().UTC()
	user := &entity.User{Name: "User Name", Email: email, PasswordHash: "$argon2id$stub", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.users.Create(s.ctx, user))
	s.Require().NotZero(user.ID)

	return user
}

func (s *RepositorySuite) createCategory(ownerID *int64, name string) *entity.Category {
	category := &entity.Category{Name: name, OwnerID: ownerID}
	s.Require().NoError(s.categories.Create(s.ctx, category))
	s.Require().NotZero(category.ID)

	return category
}

func (s *RepositorySuite) createRecord(owner *entity.User, category *entity.Category, amount int64, date time.Time) *entity.Record {
	record, err := entity.NewRecord(owner.ID, category, amount, "lunch", date)
	s.Require().NoError(err)
	s.Require().NoError(s.records.Create(s.ctx, record))

	return record
}

func (s *RepositorySuite) TestUser_CreateAndFind() {
	user := s.createUser("a@ex.com")

	byID, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("a@ex.com", byID.Email)
	s.Equal("$argon2id$stub", byID.PasswordHash)
	s.Equal(0, byID.CategoriesCount)

	byEmail, err := s.users.FindByEmail(s.ctx, "a@ex.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)

	// Email lookups are case-sensitive.
	_, err = s.users.FindByEmail(s.ctx, "A@ex.com")
	s.ErrorIs(err, repository.ErrUserNotFound)

	_, err = s.users.FindByID(s.ctx, user.ID+100)
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *RepositorySuite) TestUser_ExistsByEmail() {
	s.createUser("a@ex.com")

	exists, err := s.users.ExistsByEmail(s.ctx, "a@ex.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.users.ExistsByEmail(s.ctx, "b@ex.com")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositorySuite) TestUser_DuplicateEmail() {
	s.createUser("a@ex.com")

	now := time.Now()
	err := s.users.Create(s.ctx, &entity.User{Name: "Other", Email: "a@ex.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now})
	s.Require().Error(err)
	s.True(errors.Is(err, domainerrors.ErrEmailInUse))
}

func (s *RepositorySuite) TestUser_UpdateProfileWritesNameOnly() {
	user := s.createUser("a@ex.com")

	user.Name = "Renamed"
	user.PasswordHash = "tampered"
	user.CategoriesCount = 99
	user.UpdatedAt = user.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.users.UpdateProfile(s.ctx, user))

	stored, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", stored.Name)
	s.Equal("$argon2id$stub", stored.PasswordHash)
	s.Equal(0, stored.CategoriesCount)
	s.WithinDuration(user.UpdatedAt, stored.UpdatedAt, time.Second)
}

func (s *RepositorySuite) TestUser_CategoriesCounterIsGuarded() {
	user := s.createUser("a@ex.com")

	for want := 1; want <= 2; want++ {
		got, err := s.users.IncrementCategoriesCount(s.ctx, user.ID, 2)
		s.Require().NoError(err)
		s.Equal(want, got)
	}

	_, err := s.users.IncrementCategoriesCount(s.ctx, user.ID, 2)
	s.ErrorIs(err, repository.ErrCategoryQuotaExceeded)

	stored, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.CategoriesCount)

	for _, want := range []int{1, 0, 0} {
		got, err := s.users.DecrementCategoriesCount(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(want, got)
	}
}

func (s *RepositorySuite) TestCategory_Visibility() {
	alice := s.createUser("alice@ex.com")
	bob := s.createUser("bob@ex.com")

	public := s.createCategory(nil, "Food")
	mine := s.createCategory(&alice.ID, "Games")
	s.createCategory(&bob.ID, "Travel")

	visible, err := s.categories.FindVisibleToUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(visible, 2)
	s.Equal(public.ID, visible[0].ID)
	s.True(visible[0].IsPublic())
	s.Equal(mine.ID, visible[1].ID)
	s.True(visible[1].OwnedBy(alice.ID))
}

func (s *RepositorySuite) TestCategory_FindAndDelete() {
	alice := s.createUser("alice@ex.com")
	description := "weekly groceries"
	category := &entity.Category{Name: "Food", Description: &description, OwnerID: &alice.ID}
	s.Require().NoError(s.categories.Create(s.ctx, category))

	found, err := s.categories.FindByID(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.Description)
	s.Equal(description, *found.Description)

	s.Require().NoError(s.categories.Delete(s.ctx, category.ID))
	_, err = s.categories.FindByID(s.ctx, category.ID)
	s.ErrorIs(err, repository.ErrCategoryNotFound)
	s.ErrorIs(s.categories.Delete(s.ctx, category.ID), repository.ErrCategoryNotFound)
}

func (s *RepositorySuite) TestRecord_ListSortedWithCategory() {
	alice := s.createUser("alice@ex.com")
	bob := s.createUser("bob@ex.com")
	category := s.createCategory(nil, "Food")

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	oldest := s.createRecord(alice, category, 30, day)
	newest := s.createRecord(alice, category, 10, day.Add(48*time.Hour))
	middle := s.createRecord(alice, category, 20, day.Add(24*time.Hour))
	s.createRecord(bob, category, 99, day)

	ids := func(sort entity.RecordSort) []int64 {
		records, err := s.records.FindByOwner(s.ctx, alice.ID, sort)
		s.Require().NoError(err)

		out := make([]int64, 0, len(records))
		for _, record := range records {
			s.Require().NotNil(record.Category)
			s.Equal("Food", record.Category.Name)
			out = append(out, record.ID)
		}

		return out
	}

	s.Equal([]int64{newest.ID, middle.ID, oldest.ID}, ids(entity.DefaultRecordSort))
	s.Equal([]int64{oldest.ID, middle.ID, newest.ID}, ids(entity.RecordSort{Field: entity.RecordSortDate}))
	s.Equal([]int64{newest.ID, middle.ID, oldest.ID}, ids(entity.RecordSort{Field: entity.RecordSortAmount}))
	s.Equal([]int64{oldest.ID, middle.ID, newest.ID}, ids(entity.RecordSort{Field: entity.RecordSortAmount, Descending: true}))

	_, err := s.records.FindByOwner(s.ctx, alice.ID, entity.RecordSort{Field: "id; DROP TABLE records"})
	s.True(errors.Is(err, domainerrors.ErrInvalidSort))
}

func (s *RepositorySuite) TestRecord_FindAndDelete() {
	alice := s.createUser("alice@ex.com")
	category := s.createCategory(&alice.ID, "Food")
	record := s.createRecord(alice, category, 20, time.Now().UTC())

	found, err := s.records.FindByID(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(int64(20), found.Amount)
	s.Equal(alice.ID, found.OwnerID)
	s.Require().NotNil(found.Category)
	s.Equal(category.ID, found.Category.ID)

	s.Require().NoError(s.records.Delete(s.ctx, record.ID))
	_, err = s.records.FindByID(s.ctx, record.ID)
	s.ErrorIs(err, repository.ErrRecordNotFound)
}

func (s *RepositorySuite) TestRecord_RejectsNonPositiveAmount() {
	alice := s.createUser("alice@ex.com")
	category := s.createCategory(nil, "Food")

	err := s.records.Create(s.ctx, &entity.Record{Amount: 0, Description: "free", Date: time.Now(), OwnerID: alice.ID, CategoryID: category.ID})
	s.True(errors.Is(err, domainerrors.ErrInvalidAmount))
}

func (s *RepositorySuite) TestDeleteUserCascades() {
	alice := s.createUser("alice@ex.com")
	category := s.createCategory(&alice.ID, "Food")
	public := s.createCategory(nil, "Shared")
	record := s.createRecord(alice, public, 20, time.Now().UTC())

	s.Require().NoError(s.users.Delete(s.ctx, alice.ID))

	_, err := s.categories.FindByID(s.ctx, category.ID)
	s.ErrorIs(err, repository.ErrCategoryNotFound)
	_, err = s.records.FindByID(s.ctx, record.ID)
	s.ErrorIs(err, repository.ErrRecordNotFound)
	_, err = s.categories.FindByID(s.ctx, public.ID)
	s.NoError(err)
}

func (s *RepositorySuite) TestTransaction_RollsBackOnError() {
	alice := s.createUser("alice@ex.com")
	boom := errors.New("boom")

	err := s.txManager.Execute(s.ctx, func(factory repository.RepositoryFactory) error {
		if _, err := factory.NewUserRepository().IncrementCategoriesCount(s.ctx, alice.ID, 5); err != nil {
			return err
		}
		if err := factory.NewCategoryRepository().Create(s.ctx, entity.NewCategory(alice.ID, "Food", nil)); err != nil {
			return err
		}

		return boom
	})
	s.ErrorIs(err, boom)

	stored, err := s.users.FindByID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.CategoriesCount)

	visible, err := s.categories.FindVisibleToUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(visible)
}

func (s *RepositorySuite) TestTransaction_RollsBackOnPanic() {
	alice := s.createUser("alice@ex.com")

	s.Panics(func() {
		_ = s.txManager.Execute(s.ctx, func(factory repository.RepositoryFactory) error {
			if _, err := factory.NewUserRepository().IncrementCategoriesCount(s.ctx, alice.ID, 5); err != nil {
				return err
			}
			panic("mid-transaction")
		})
	})

	stored, err := s.users.FindByID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.CategoriesCount)
}

func (s *RepositorySuite) TestTransaction_Commits() {
	alice := s.createUser("alice@ex.com")

	err := s.txManager.Execute(s.ctx, func(factory repository.RepositoryFactory) error {
		if _, err := factory.NewUserRepository().IncrementCategoriesCount(s.ctx, alice.ID, 5); err != nil {
			return err
		}

		return factory.NewCategoryRepository().Create(s.ctx, entity.NewCategory(alice.ID, "Food", nil))
	})
	s.Require().NoError(err)

	stored, err := s.users.FindByID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.CategoriesCount)
}
