// AngelaMos | 2026
// service_test.go

package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/user"
)

type stubUsers struct {
	users map[string]*user.User
}

func newStubUsers(ids ...string) *stubUsers {
	s := &stubUsers{users: map[string]*user.User{}}
	for _, id := range ids {
		s.users[id] = &user.User{ID: id, Name: "Institución " + id}
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

type stubAssignments struct {
	Repository

	created  []*Assignment
	existing map[string]bool
	bySeller []Assignment

	createErr   error
	bySellerErr error
}

func newStubAssignments() *stubAssignments {
	return &stubAssignments{existing: map[string]bool{}}
}

func (s *stubAssignments) Create(_ context.Context, a *Assignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, a)
	return nil
}

func (s *stubAssignments) Exists(_ context.Context, sellerID, clientID string) (bool, error) {
	return s.existing[sellerID+"/"+clientID], nil
}

func (s *stubAssignments) ListBySeller(_ context.Context, _ string) ([]Assignment, error) {
	return s.bySeller, s.bySellerErr
}

func newTestService(repo *stubAssignments, users *stubUsers) *Service {
	return NewService(repo, users, slog.Default())
}

func TestCreatePersistsAssignment(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1", "client-1")
	repo := newStubAssignments()
	svc := newTestService(repo, users)

	created, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "seller-1",
		ClientID: "client-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "seller-1", repo.created[0].SellerID)
	assert.Equal(t, "client-1", repo.created[0].ClientID)
}

func TestCreateRejectsSelfAssignment(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1")
	svc := newTestService(newStubAssignments(), users)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "seller-1",
		ClientID: "seller-1",
	})

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "El vendedor no puede ser asignado como su propio cliente")
}

func TestCreateAggregatesViolations(t *testing.T) {
	t.Parallel()

	users := newStubUsers() // nobody exists
	svc := newTestService(newStubAssignments(), users)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "ghost-seller",
		ClientID: "ghost-client",
	})

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "No existe un vendedor con ID: ghost-seller")
	assert.Contains(t, ve.Message, "No existe un cliente con ID: ghost-client")
	assert.Contains(t, ve.Message, "; ")
}

func TestCreateRejectsMissingIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(newStubAssignments(), newStubUsers())

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "  ",
		ClientID: "",
	})

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t,
		"El campo 'seller_id' es obligatorio; El campo 'client_id' es obligatorio",
		ve.Message,
	)
}

func TestCreateRejectsDuplicatePair(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1", "client-1")
	repo := newStubAssignments()
	repo.existing["seller-1/client-1"] = true
	svc := newTestService(repo, users)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "seller-1",
		ClientID: "client-1",
	})

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Esta asignación vendedor-cliente ya existe")
	assert.Empty(t, repo.created)
}

func TestAssignedClientsUnknownSeller(t *testing.T) {
	t.Parallel()

	svc := newTestService(newStubAssignments(), newStubUsers())

	_, err := svc.AssignedClientsWithDetails(context.Background(), "ghost")

	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No se encontró el vendedor con ID: ghost", nf.Message)
}

func TestAssignedClientsSkipsOrphans(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1", "client-1")
	repo := newStubAssignments()
	repo.bySeller = []Assignment{
		{ID: "a-1", SellerID: "seller-1", ClientID: "client-1"},
		{ID: "a-2", SellerID: "seller-1", ClientID: "client-gone"},
	}
	svc := newTestService(repo, users)

	clients, err := svc.AssignedClientsWithDetails(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Len(t, clients, 1)
	assert.Equal(t, "client-1", clients[0].ID)
}

func TestAssignedClientsEmptyList(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1")
	svc := newTestService(newStubAssignments(), users)

	clients, err := svc.AssignedClientsWithDetails(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreateWrapsRepositoryFailure(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1", "client-1")
	repo := newStubAssignments()
	repo.createErr = fmt.Errorf("db down")
	svc := newTestService(repo, users)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		SellerID: "seller-1",
		ClientID: "client-1",
	})

	var be *core.BusinessLogicError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Error(), "Error al crear asignación")
}

func TestListBySellerWrapsFailure(t *testing.T) {
	t.Parallel()

	repo := newStubAssignments()
	repo.bySellerErr = fmt.Errorf("db down")
	svc := newTestService(repo, newStubUsers())

	_, err := svc.ListBySeller(context.Background(), "seller-1")

	var be *core.BusinessLogicError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Error(), "Error al obtener clientes asignados")
}

func TestListBySellerPassesThrough(t *testing.T) {
	t.Parallel()

	repo := newStubAssignments()
	repo.bySeller = []Assignment{
		{ID: "a-1", SellerID: "seller-1", ClientID: "client-1"},
	}
	svc := newTestService(repo, newStubUsers())

	assignments, err := svc.ListBySeller(context.Background(), "seller-1")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "a-1", assignments[0].ID)
}

type mutableAssignments struct {
	*stubAssignments

	updated []*Assignment
	deleted []string
}

func (s *mutableAssignments) Update(_ context.Context, a *Assignment) error {
	s.updated = append(s.updated, a)
	return nil
}

func (s *mutableAssignments) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestUpdateAndDeleteDelegateToRepository(t *testing.T) {
	t.Parallel()

	users := newStubUsers("seller-1", "client-1")
	repo := &mutableAssignments{stubAssignments: newStubAssignments()}
	svc := NewService(repo, users, slog.Default())

	err := svc.Update(context.Background(), &Assignment{
		ID:       "a-1",
		SellerID: "seller-1",
		ClientID: "client-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "a-1"))

	assert.Len(t, repo.updated, 1)
	assert.Equal(t, []string{"a-1"}, repo.deleted)
}
