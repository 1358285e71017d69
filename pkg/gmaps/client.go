// Package gmaps is a thin client for the Google Maps web services used
// by the reconciliation pipeline: geocoding, place details, find place,
// text search, autocomplete and nearby search. Responses are decoded
// into the raw API shapes; interpretation lives in pkg/place.
package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

const defaultQPS = 10

// Client performs Google Maps web service operations.
type Client interface {
	Geocode(ctx context.Context, req GeocodeRequest) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, req ReverseGeocodeRequest) (*GeocodeResponse, error)
	PlaceDetails(ctx context.Context, req PlaceDetailsRequest) (*PlaceDetailsResponse, error)
	FindPlace(ctx context.Context, req FindPlaceRequest) (*FindPlaceResponse, error)
	TextSearch(ctx context.Context, req TextSearchRequest) (*PlacesResponse, error)
	Autocomplete(ctx context.Context, req AutocompleteRequest) (*AutocompleteResponse, error)
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*PlacesResponse, error)
}

// GeocodeRequest parameterizes a forward geocode call.
type GeocodeRequest struct {
	Address    string
	Components map[string]string
	Region     string
	Language   string
}

// ReverseGeocodeRequest parameterizes a reverse geocode call.
type ReverseGeocodeRequest struct {
	Location LatLng
	Language string
}

// PlaceDetailsRequest parameterizes a place details call.
type PlaceDetailsRequest struct {
	PlaceID  string
	Fields   []string
	Language string
}

// FindPlaceRequest parameterizes a find place call.
type FindPlaceRequest struct {
	Input        string
	InputType    string
	LocationBias string
	Fields       []string
	Language     string
}

// TextSearchRequest parameterizes a text search call.
type TextSearchRequest struct {
	Query    string
	Location *LatLng
	Radius   int
	Type     string
	Region   string
	Language string
}

// AutocompleteRequest parameterizes an autocomplete call. Offset is
// the caret position within Input; zero means the whole input is used.
type AutocompleteRequest struct {
	Input      string
	Offset     int
	Components map[string]string
	Location   *LatLng
	Radius     int
	Language   string
}

// NearbySearchRequest parameterizes a nearby search call. Location is
// required by the API.
type NearbySearchRequest struct {
	Location LatLng
	Radius   int
	Keyword  string
	Type     string
	Language string
}

// StatusError reports a response whose body status is neither OK nor
// ZERO_RESULTS. Empty result sets are not errors: callers receive an
// empty payload and decide for themselves.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gmaps: status %s", e.Status)
	}
	return fmt.Sprintf("gmaps: status %s: %s", e.Status, e.Message)
}

// PointBias formats a point location bias for find place.
func PointBias(lat, lng float64) string {
	return fmt.Sprintf("point:%.5f,%.5f", lat, lng)
}

// CircleBias formats a circular location bias with its radius in
// meters.
func CircleBias(radiusMeters int, lat, lng float64) string {
	return fmt.Sprintf("circle:%d@%.5f,%.5f", radiusMeters, lat, lng)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLanguage sets the language applied to requests that do not set
// their own.
func WithLanguage(lang string) Option {
	return func(c *httpClient) {
		c.language = lang
	}
}

// WithRegion sets the region bias (ccTLD code) applied to geocode and
// text search requests that do not set their own.
func WithRegion(region string) Option {
	return func(c *httpClient) {
		c.region = region
	}
}

// WithQPS caps the sustained request rate. Zero disables limiting.
func WithQPS(qps int) Option {
	return func(c *httpClient) {
		if qps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), qps)
	}
}

type httpClient struct {
	apiKey   string
	baseURL  string
	language string
	region   string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Maps web service client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultQPS), defaultQPS),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Geocode(ctx context.Context, req GeocodeRequest) (*GeocodeResponse, error) {
	params := url.Values{}
	if req.Address != "" {
		params.Set("address", req.Address)
	}
	if comp := encodeComponents(req.Components); comp != "" {
		params.Set("components", comp)
	}
	c.setRegion(params, req.Region)
	c.setLanguage(params, req.Language)

	var out GeocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ReverseGeocode(ctx context.Context, req ReverseGeocodeRequest) (*GeocodeResponse, error) {
	params := url.Values{}
	params.Set("latlng", formatLatLng(req.Location))
	c.setLanguage(params, req.Language)

	var out GeocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) PlaceDetails(ctx context.Context, req PlaceDetailsRequest) (*PlaceDetailsResponse, error) {
	params := url.Values{}
	params.Set("place_id", req.PlaceID)
	if len(req.Fields) > 0 {
		params.Set("fields", strings.Join(req.Fields, ","))
	}
	c.setLanguage(params, req.Language)

	var out PlaceDetailsResponse
	if err := c.get(ctx, "/place/details/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) FindPlace(ctx context.Context, req FindPlaceRequest) (*FindPlaceResponse, error) {
	params := url.Values{}
	params.Set("input", req.Input)
	inputType := req.InputType
	if inputType == "" {
		inputType = InputTypeTextQuery
	}
	params.Set("inputtype", inputType)
	if req.LocationBias != "" {
		params.Set("locationbias", req.LocationBias)
	}
	if len(req.Fields) > 0 {
		params.Set("fields", strings.Join(req.Fields, ","))
	}
	c.setLanguage(params, req.Language)

	var out FindPlaceResponse
	if err := c.get(ctx, "/place/findplacefromtext/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) TextSearch(ctx context.Context, req TextSearchRequest) (*PlacesResponse, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	if req.Location != nil {
		params.Set("location", formatLatLng(*req.Location))
	}
	if req.Radius > 0 {
		params.Set("radius", strconv.Itoa(req.Radius))
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	c.setRegion(params, req.Region)
	c.setLanguage(params, req.Language)

	var out PlacesResponse
	if err := c.get(ctx, "/place/textsearch/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Autocomplete(ctx context.Context, req AutocompleteRequest) (*AutocompleteResponse, error) {
	params := url.Values{}
	params.Set("input", req.Input)
	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}
	if comp := encodeComponents(req.Components); comp != "" {
		params.Set("components", comp)
	}
	if req.Location != nil {
		params.Set("location", formatLatLng(*req.Location))
	}
	if req.Radius > 0 {
		params.Set("radius", strconv.Itoa(req.Radius))
	}
	c.setLanguage(params, req.Language)

	var out AutocompleteResponse
	if err := c.get(ctx, "/place/autocomplete/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*PlacesResponse, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(req.Location))
	if req.Radius > 0 {
		params.Set("radius", strconv.Itoa(req.Radius))
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	c.setLanguage(params, req.Language)

	var out PlacesResponse
	if err := c.get(ctx, "/place/nearbysearch/json", params, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "gmaps: wait for rate limiter")
		}
	}

	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "gmaps: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "gmaps: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "gmaps: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("gmaps: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "gmaps: unmarshal response")
	}
	return nil
}

func (c *httpClient) setLanguage(params url.Values, lang string) {
	if lang == "" {
		lang = c.language
	}
	if lang != "" {
		params.Set("language", lang)
	}
}

func (c *httpClient) setRegion(params url.Values, region string) {
	if region == "" {
		region = c.region
	}
	if region != "" {
		params.Set("region", region)
	}
}

func checkStatus(status, message string) error {
	switch status {
	case StatusOK, StatusZeroResults:
		return nil
	default:
		return &StatusError{Status: status, Message: message}
	}
}

// encodeComponents renders a component filter as the pipe-separated
// form the API expects, with keys sorted for stable URLs.
func encodeComponents(components map[string]string) string {
	if len(components) == 0 {
		return ""
	}
	keys := make([]string, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+components[k])
	}
	return strings.Join(parts, "|")
}

func formatLatLng(l LatLng) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
