//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductTestSuite struct {
	suite.Suite
	client    *http.Client
	productID string
}

func (suite *ProductTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}

	// The catalog is read-only through the API, so tests work against seeded data
	suite.productID = suite.firstProductID()
}

func (suite *ProductTestSuite) firstProductID() string {
	resp, err := suite.client.Get(APIBaseURL + "/api/v1/products?limit=1")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var listResp map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&listResp)
	require.NoError(suite.T(), err)

	products, ok := listResp["products"].([]interface{})
	if !ok || len(products) == 0 {
		return ""
	}

	product := products[0].(map[string]interface{})
	return product["id"].(string)
}

func (suite *ProductTestSuite) TestListProducts() {
	resp, err := suite.client.Get(APIBaseURL + "/api/v1/products")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var listResp map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&listResp)
	require.NoError(suite.T(), err)

	assert.Contains(suite.T(), listResp, "products")
	assert.Contains(suite.T(), listResp, "total")
	assert.Contains(suite.T(), listResp, "pages")
}

func (suite *ProductTestSuite) TestListProductsPagination() {
	resp, err := suite.client.Get(APIBaseURL + "/api/v1/products?page=1&limit=2")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var listResp map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&listResp)
	require.NoError(suite.T(), err)

	products, ok := listResp["products"].([]interface{})
	require.True(suite.T(), ok)
	assert.LessOrEqual(suite.T(), len(products), 2)
}

func (suite *ProductTestSuite) TestGetProduct() {
	if suite.productID == "" {
		suite.T().Skip("No seeded products available")
		return
	}

	resp, err := suite.client.Get(fmt.Sprintf("%s/api/v1/products/%s", APIBaseURL, suite.productID))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var product map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&product)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), suite.productID, product["id"])
	assert.NotEmpty(suite.T(), product["name"])
	assert.Contains(suite.T(), product, "price")
	assert.Contains(suite.T(), product, "average_rating")
}

func (suite *ProductTestSuite) TestGetNonexistentProduct() {
	resp, err := suite.client.Get(APIBaseURL + "/api/v1/products/00000000-0000-0000-0000-000000000000")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *ProductTestSuite) TestGetProductInvalidID() {
	resp, err := suite.client.Get(APIBaseURL + "/api/v1/products/not-a-uuid")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(ProductTestSuite))
}
