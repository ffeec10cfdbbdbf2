package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronalogitech/whmapping/internal/application/auth"
	"github.com/dronalogitech/whmapping/internal/application/catalog"
	"github.com/dronalogitech/whmapping/internal/application/dto"
	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/application/movementlog"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/infrastructure/itemmaster"
	"github.com/dronalogitech/whmapping/internal/infrastructure/memory"
	"github.com/dronalogitech/whmapping/internal/infrastructure/pdf"
	apphttp "github.com/dronalogitech/whmapping/internal/interfaces/http"
	pkgjwt "github.com/dronalogitech/whmapping/pkg/jwt"
)

type testAPI struct {
	app   *fiber.App
	admin string
	oper  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    inventory.NewLedgerUseCase(store, nil),
		Lookup:    inventory.NewLookupUseCase(store.Locations(), store.SKUs(), store.Inventory()),
		LogUC:     movementlog.NewUseCase(store.MovementLogs(), nil),
		CatalogUC: catalog.NewUseCase(store.Locations(), store.SKUs(), itemmaster.NewReader(), pdf.NewLabelGenerator("WH"), nil),
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
	})

	mint := func(name, role string) string {
		tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
			UserID: "u-" + name, Email: name + "@wh.local", Name: name, Role: role,
		})
		require.NoError(t, err)
		return tok
	}
	return &testAPI{app: app, admin: mint("jefe", entity.RoleAdmin), oper: mint("ana", entity.RoleOperator)}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestInventoryRoutes_PutawayMoveAdjust(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/inventory/putaway", api.oper, dto.PutawayRequest{
		LocationCode: "a1-01",
		Items:        []dto.PutawayItemRequest{{SKUCode: "7501", Qty: 10}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var put dto.ActionResult[[]dto.InventoryRecordResponse]
	require.NoError(t, json.Unmarshal(body, &put))
	assert.True(t, put.Success)
	require.Len(t, *put.Data, 1)
	assert.Equal(t, "A1-01", (*put.Data)[0].LocationCode)
	assert.Equal(t, 10, (*put.Data)[0].Qty)

	resp, body = api.do(t, http.MethodPost, "/api/inventory/move", api.oper, dto.MoveRequest{
		FromLocationCode: "A1-01", ToLocationCode: "B1", SKUCode: "7501", Qty: 11,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var failed dto.ActionResult[dto.MoveResponse]
	require.NoError(t, json.Unmarshal(body, &failed))
	assert.False(t, failed.Success)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "INSUFFICIENT_QUANTITY", failed.Error.Code)
	assert.Equal(t, "Insufficient quantity. Available: 10, Requested: 11", failed.Error.Message)

	resp, body = api.do(t, http.MethodPost, "/api/inventory/move", api.oper, dto.MoveRequest{
		FromLocationCode: "A1-01", ToLocationCode: "B1", SKUCode: "7501", Qty: 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var moved dto.ActionResult[dto.MoveResponse]
	require.NoError(t, json.Unmarshal(body, &moved))
	assert.Equal(t, 6, moved.Data.From.Qty)
	assert.Equal(t, 4, moved.Data.To.Qty)

	resp, _ = api.do(t, http.MethodPost, "/api/inventory/adjust", api.oper, dto.AdjustRequest{
		LocationCode: "B1", SKUCode: "7501", Qty: -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = api.do(t, http.MethodPost, "/api/inventory/adjust", api.oper, dto.AdjustRequest{
		LocationCode: "B1", SKUCode: "7501", Qty: -1, Note: "caja rota",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = api.do(t, http.MethodGet, "/api/inventory/sku/7501", api.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock dto.ActionResult[dto.SKULookupResponse]
	require.NoError(t, json.Unmarshal(body, &stock))
	assert.Equal(t, 9, stock.Data.TotalQty)
	assert.Equal(t, 2, stock.Data.TotalLocations)

	resp, _ = api.do(t, http.MethodGet, "/api/inventory/location/ZZ", api.oper, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryRoutes_SinToken(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodGet, "/api/inventory/location/A1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogRoutes_OperadorSoloVeLoSuyo(t *testing.T) {
	api := newTestAPI(t)
	put := func(token, loc string) {
		resp, body := api.do(t, http.MethodPost, "/api/inventory/putaway", token, dto.PutawayRequest{
			LocationCode: loc,
			Items:        []dto.PutawayItemRequest{{SKUCode: "S1", Qty: 2}},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}
	put(api.oper, "A1")
	put(api.admin, "A2")
	put(api.admin, "A3")

	resp, body := api.do(t, http.MethodGet, "/api/logs?user=jefe", api.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own dto.LogsResponse
	require.NoError(t, json.Unmarshal(body, &own))
	assert.Equal(t, 1, own.Pagination.Total)
	assert.Equal(t, "ana", own.Data[0].User)
	assert.Nil(t, own.Data[0].FromLocationCode)

	resp, body = api.do(t, http.MethodGet, "/api/logs?limit=2", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all dto.LogsResponse
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, 3, all.Pagination.Total)
	assert.True(t, all.Pagination.HasMore)
	require.Len(t, all.Data, 2)

	resp, body = api.do(t, http.MethodGet, "/api/logs/stats", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.LogStatsResponse
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 3, stats.TotalLocations)
	assert.Equal(t, 6, stats.TotalQuantity)

	// borrar es solo para admin
	resp, _ = api.do(t, http.MethodDelete, "/api/logs/"+all.Data[0].ID, api.oper, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodDelete, "/api/logs/"+all.Data[0].ID, api.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = api.do(t, http.MethodDelete, "/api/logs/"+all.Data[0].ID, api.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = api.do(t, http.MethodDelete, "/api/logs/bulk", api.admin, dto.BulkDeleteRequest{IDs: []string{all.Data[1].ID, "no-existe"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del dto.DeleteResponse
	require.NoError(t, json.Unmarshal(body, &del))
	assert.Equal(t, int64(1), del.Deleted)

	resp, _ = api.do(t, http.MethodDelete, "/api/logs/bulk", api.admin, dto.BulkDeleteRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogRoutes_ImportYLabels(t *testing.T) {
	api := newTestAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "master.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("EAN,Item Code,Item Name,Details\n7501,IT-1,Widget,Azul\n,IT-2,Sin EAN,\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	upload := func(token string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/import-item-master", bytes.NewReader(buf.Bytes()))
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := api.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload(api.oper)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = upload(api.admin)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"imported":1`)

	resp2, body := api.do(t, http.MethodGet, "/api/skus?search=widget", api.oper, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, string(body), "7501")

	resp2, body = api.do(t, http.MethodGet, "/api/locations/labels?codes=A1-01,A1-02", api.oper, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "application/pdf", resp2.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAuthRoutes_LoginYMe(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/users", api.admin, dto.CreateUserRequest{
		Email: "Luis@wh.local", Name: "Luis", Password: "secreto123", Role: entity.RoleOperator,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "luis@wh.local", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "luis@wh.local", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)

	resp, body = api.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "luis@wh.local")
}
