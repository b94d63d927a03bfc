package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	"github.com/erp/masterdata/internal/controller"
	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
	"github.com/erp/masterdata/tests/testutil"
)

// cargotype is transaction 3 in the master-data module
func cargoDescriptor() controller.EntityDescriptor {
	return controller.NewDescriptor("cargotype", 3, 3)
}

func newClient(env *testutil.Env) *controller.HTTPClient {
	return controller.NewHTTPClient(env.Server.URL+"/api/v1/master", env.Token, env.Server.Client(), nil)
}

func newScreen(env *testutil.Env, grants []identity.AccessGrant) *controller.Controller {
	return controller.New(cargoDescriptor(), newClient(env), controller.NewSnapshotGate(grants), nil)
}

func TestCreatedRecordAppearsExactlyOnceInList(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-20", "name": "Bulk Cargo", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))
	assert.False(t, screen.ModalOpen())

	require.NoError(t, screen.List().Refresh(ctx))
	occurrences := 0
	for _, row := range screen.List().Records() {
		if cargoDescriptor().Code(row) == "CT-20" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
	assert.Equal(t, int64(1), screen.List().TotalRecords())
}

func TestServerRejectsDuplicateCode(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-01", "name": "First", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))

	// the duplicate-code check is advisory, so the same code can be
	// submitted again; the server must refuse it
	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-01", "name": "Second", "isActive": true,
	}))
	err := screen.ConfirmSave(ctx)

	var mutErr *controller.MutationError
	require.ErrorAs(t, err, &mutErr)
	assert.True(t, screen.ModalOpen())
}

func TestCodeBlurFindsExistingRecordOverWire(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-05", "name": "Container", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	outcome := screen.HandleCodeBlur(ctx, "ct-05")
	require.Equal(t, controller.ResolverFound, outcome.State)
	require.NotNil(t, outcome.Match)

	// accepting the match switches the session to edit on the fetched row
	screen.LoadExisting(outcome.Match)
	assert.Equal(t, controller.ModeEdit, screen.Mode())
	assert.Equal(t, "Container", cargoDescriptor().DisplayName(screen.Selected()))
}

func TestEditRoundTripReplacesRecord(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-09", "name": "Old Name", "remarks": "keep me?", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))
	require.NoError(t, screen.List().Refresh(ctx))

	row := screen.List().Records()[0]
	require.NoError(t, screen.Open(controller.ModeEdit, row))
	// remarks omitted on purpose; the update is a full replace
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-09", "name": "New Name", "isActive": false,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))

	require.NoError(t, screen.List().Refresh(ctx))
	updated := screen.List().Records()[0]
	assert.Equal(t, "New Name", cargoDescriptor().DisplayName(updated))
	assert.Equal(t, false, updated["isActive"])
	assert.Empty(t, updated["remarks"])
	assert.Equal(t, int64(1), screen.List().TotalRecords())
}

func TestDeleteRoundTrip(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-30", "name": "Doomed", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))
	require.NoError(t, screen.List().Refresh(ctx))

	id := cargoDescriptor().ID(screen.List().Records()[0])
	require.True(t, screen.RequestDelete(id))
	target, pending := screen.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, "Doomed", target.Name)

	require.NoError(t, screen.ConfirmDelete(ctx))
	require.NoError(t, screen.List().Refresh(ctx))
	assert.Empty(t, screen.List().Records())
}

func TestLockedScreenOverWire(t *testing.T) {
	// no grants at all: the server answers locked and the screen follows
	env := testutil.NewEnv(t, nil)
	screen := newScreen(env, nil)

	require.NoError(t, screen.List().Refresh(context.Background()))
	assert.True(t, screen.List().Locked())
	assert.False(t, screen.CanView())
	assert.False(t, screen.CanCreate())
	assert.False(t, screen.CanEdit())
	assert.False(t, screen.CanDelete())
}

func TestCompanyIsolationOverWire(t *testing.T) {
	grants := []identity.AccessGrant{testutil.FullGrant(3)}
	env := testutil.NewEnv(t, grants)
	screen := newScreen(env, grants)
	ctx := context.Background()

	require.NoError(t, screen.Open(controller.ModeCreate, nil))
	require.NoError(t, screen.SubmitForm(controller.Record{
		"code": "CT-77", "name": "Mine", "isActive": true,
	}))
	require.NoError(t, screen.ConfirmSave(ctx))

	// a second tenant with its own server sees nothing
	otherGrants := []identity.AccessGrant{testutil.FullGrant(3)}
	otherEnv := testutil.NewEnv(t, otherGrants)
	otherScreen := newScreen(otherEnv, otherGrants)
	require.NoError(t, otherScreen.List().Refresh(ctx))
	assert.Empty(t, otherScreen.List().Records())

	// and within one database, rows are scoped by company
	var count int64
	require.NoError(t, env.DB.Model(&models.MasterRecordModel{}).
		Where("company_id = ?", env.CompanyID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginAndPermissionsOverWire(t *testing.T) {
	env := testutil.NewEnv(t, nil)

	bobID := uuid.New()
	hash, err := appidentity.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, env.DB.Create(&models.UserModel{
		ID:           bobID,
		CompanyID:    env.CompanyID,
		Username:     "bob",
		DisplayName:  "Bob",
		PasswordHash: hash,
		IsActive:     true,
	}).Error)

	bobGrants := []identity.AccessGrant{testutil.FullGrant(3), testutil.FullGrant(9)}
	for i := range bobGrants {
		bobGrants[i].UserID = bobID
		bobGrants[i].CompanyID = env.CompanyID
	}
	require.NoError(t, env.Grants.SaveAll(context.Background(), bobGrants))

	body, _ := json.Marshal(map[string]string{"username": "bob", "password": "s3cret-pass"})
	resp, err := http.Post(env.Server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env1 struct {
		Result int `json:"result"`
		Data   struct {
			Username string `json:"username"`
			Tokens   struct {
				AccessToken string `json:"accessToken"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env1))
	require.Equal(t, 1, env1.Result)
	assert.Equal(t, "bob", env1.Data.Username)
	require.NotEmpty(t, env1.Data.Tokens.AccessToken)

	// the fresh token reaches the permissions endpoint
	req, err := http.NewRequest(http.MethodGet, env.Server.URL+"/api/v1/identity/permissions", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+env1.Data.Tokens.AccessToken)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()

	var env2 struct {
		Result int                    `json:"result"`
		Data   []identity.AccessGrant `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&env2))
	require.Equal(t, 1, env2.Result)
	assert.Len(t, env2.Data, 2)
}
