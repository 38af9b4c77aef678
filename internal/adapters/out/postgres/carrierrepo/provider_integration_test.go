package carrierrepo_test

import (
	"context"
	"testing"
	"time"

	"freightmatch/internal/adapters/out/postgres/carrierrepo"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CarrierProfileProviderIntegrationTestSuite provides integration tests for the
// carrier profile provider using PostgreSQL containers.
type CarrierProfileProviderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	provider  *carrierrepo.GormCarrierProfileProvider
}

func (suite *CarrierProfileProviderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&carrierrepo.CarrierAccountDTO{},
		&carrierrepo.CarrierVehicleDTO{},
	))

	suite.provider = carrierrepo.NewGormCarrierProfileProvider(db)
}

func (suite *CarrierProfileProviderIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carrier_accounts, carrier_vehicles").Error)
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_CompleteAccount_ReturnsProfile() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()

	suite.insertAccount(carrierID, 36.16, -86.78, 4, 250, "refrigerated, general")
	suite.insertVehicle(carrierID, "reefer")
	suite.insertVehicle(carrierID, "box_truck")

	profile, err := suite.provider.GetProfile(ctx, carrierID)
	suite.Require().NoError(err)

	suite.True(profile.CarrierID().IsEqual(carrierID))
	suite.InDelta(36.16, profile.Home().Latitude(), 0.000001)
	suite.InDelta(-86.78, profile.Home().Longitude(), 0.000001)
	suite.Equal(4, profile.Level())
	suite.InDelta(250, profile.PreferredRadiusKm(), 0.001)
	suite.Equal([]string{"box_truck", "reefer"}, profile.Equipment())
	suite.Equal([]string{"refrigerated", "general"}, profile.PreferredCategories())
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_DuplicateVehicles_Deduplicated() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()

	suite.insertAccount(carrierID, 33.75, -84.39, 2, 150, "")
	suite.insertVehicle(carrierID, "flatbed")
	suite.insertVehicle(carrierID, "flatbed")
	suite.insertVehicle(carrierID, "box_truck")

	profile, err := suite.provider.GetProfile(ctx, carrierID)
	suite.Require().NoError(err)
	suite.Equal([]string{"box_truck", "flatbed"}, profile.Equipment())
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_NoAccount_ReturnsDefault() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()

	profile, err := suite.provider.GetProfile(ctx, carrierID)
	suite.Require().NoError(err)

	suite.True(profile.CarrierID().IsEqual(carrierID))
	suite.Require().NoError(profile.Validate())
	suite.NotEmpty(profile.Equipment())
	suite.Positive(profile.PreferredRadiusKm())
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_AccountWithoutVehicles_ReturnsDefault() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()

	suite.insertAccount(carrierID, 36.16, -86.78, 4, 250, "general")

	// No vehicles means no equipment set, which cannot form a usable profile
	profile, err := suite.provider.GetProfile(ctx, carrierID)
	suite.Require().NoError(err)
	suite.Require().NoError(profile.Validate())
	suite.NotEmpty(profile.Equipment())
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_InvalidHome_ReturnsDefault() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()

	suite.insertAccount(carrierID, 200, -86.78, 4, 250, "general")
	suite.insertVehicle(carrierID, "box_truck")

	profile, err := suite.provider.GetProfile(ctx, carrierID)
	suite.Require().NoError(err)
	suite.Require().NoError(profile.Validate())

	// The broken home coordinates never reach the profile
	suite.InDelta(33.749, profile.Home().Latitude(), 0.001)
}

func (suite *CarrierProfileProviderIntegrationTestSuite) TestGetProfile_InvalidCarrierID_ReturnsError() {
	ctx := context.Background()

	_, err := suite.provider.GetProfile(ctx, kernel.UUID{})
	suite.Require().Error(err)
}

// insertAccount stores a carrier account row directly.
func (suite *CarrierProfileProviderIntegrationTestSuite) insertAccount(
	carrierID kernel.UUID,
	homeLat float64,
	homeLon float64,
	level int,
	radiusKm float64,
	categories string,
) {
	account := carrierrepo.CarrierAccountDTO{
		ID:                  carrierID.Bytes(),
		HomeLat:             homeLat,
		HomeLon:             homeLon,
		Level:               level,
		PreferredRadiusKm:   radiusKm,
		PreferredCategories: categories,
	}
	suite.Require().NoError(suite.db.Create(&account).Error)
}

// insertVehicle stores a carrier vehicle row directly.
func (suite *CarrierProfileProviderIntegrationTestSuite) insertVehicle(
	carrierID kernel.UUID, equipmentType string,
) {
	vehicle := carrierrepo.CarrierVehicleDTO{
		ID:            uuid.New(),
		CarrierID:     carrierID.Bytes(),
		EquipmentType: equipmentType,
	}
	suite.Require().NoError(suite.db.Create(&vehicle).Error)
}

func TestCarrierProfileProviderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CarrierProfileProviderIntegrationTestSuite))
}
