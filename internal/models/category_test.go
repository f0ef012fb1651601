package models_test

import (
	"errors"

	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoryNameEmpty() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Category{
		UserID: user.ID,
		Name:   "   ",
		Type:   models.CategoryTypeExpense,
	}).Error

	suite.Assert().True(errors.Is(err, models.ErrCategoryNameEmpty), "Error is not ErrCategoryNameEmpty: %v", err)
}

func (suite *TestSuiteStandard) TestCategoryTypeInvalid() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Category{
		UserID: user.ID,
		Name:   "Groceries",
		Type:   "savings",
	}).Error

	suite.Assert().True(errors.Is(err, models.ErrCategoryTypeInvalid), "Error is not ErrCategoryTypeInvalid: %v", err)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: user.ID, Name: "Groceries"})

	err := models.DB.Create(&models.Category{
		UserID: user.ID,
		Name:   "Groceries",
		Type:   models.CategoryTypeExpense,
	}).Error
	suite.Assert().True(errors.Is(err, models.ErrCategoryNameNotUnique), "Error is not ErrCategoryNameNotUnique: %v", err)

	// The same name is fine for another user
	other := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: other.ID, Name: "Groceries"})
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: user.ID})

	err := models.DeleteCategory(models.DB, category)
	suite.Assert().Nil(err)

	var count int64
	models.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestDeleteCategoryInUse() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: user.ID})

	for i := 0; i < 3; i++ {
		suite.createTestTransaction(models.Transaction{
			UserID:     user.ID,
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(10),
		})
	}

	err := models.DeleteCategory(models.DB, category)

	var inUse models.CategoryInUseError
	suite.Require().True(errors.As(err, &inUse), "Error is not CategoryInUseError: %v", err)
	suite.Assert().Equal(int64(3), inUse.Count)

	// The category must still exist
	var count int64
	models.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	suite.Assert().Equal(int64(1), count)
}
