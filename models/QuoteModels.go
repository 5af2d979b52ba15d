package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Screen types accepted by the configurator form.
const (
	ScreenTypeStandard        = "standard"
	ScreenTypeCubic           = "cubic"
	ScreenTypeFlex            = "flex"
	ScreenTypeTransparent     = "transparent"
	ScreenTypeSemiTransparent = "semitransparent"
)

// Installation environments.
const (
	EnvironmentIndoor  = "indoor"
	EnvironmentOutdoor = "outdoor"
)

// Configuration is the flat record submitted by the configurator form.
// Type-specific fields are only read when ScreenType selects them.
type Configuration struct {
	ScreenType      string  `json:"screenType" form:"screenType" example:"standard"`
	Width           float64 `json:"width" form:"width" example:"4"`
	Height          float64 `json:"height" form:"height" example:"2.25"`
	NumScreens      int     `json:"numScreens" form:"numScreens" example:"1"`
	PanelSize       string  `json:"panelSize" form:"panelSize" example:"500x500"`
	PitchPreference float64 `json:"pitchPreference" form:"pitchPreference" example:"3.9"`
	Environment     string  `json:"environment" form:"environment" example:"outdoor"`
	Brightness      int     `json:"brightness" form:"brightness" example:"5000"`
	Redundancy      bool    `json:"redundancy" form:"redundancy"`

	CubeFaces              float64 `json:"cubeFaces,omitempty" form:"cubeFaces"`
	CubeArrangement        string  `json:"cubeArrangement,omitempty" form:"cubeArrangement"`
	FlexAngle              float64 `json:"flexAngle,omitempty" form:"flexAngle"`
	FlexCurveRadius        float64 `json:"flexCurveRadius,omitempty" form:"flexCurveRadius"`
	FlexMounting           string  `json:"flexMounting,omitempty" form:"flexMounting"`
	TransparencyLevel      float64 `json:"transparencyLevel,omitempty" form:"transparencyLevel"`
	TransparentApplication string  `json:"transparentApplication,omitempty" form:"transparentApplication"`
	RearProjection         bool    `json:"rearProjection,omitempty" form:"rearProjection"`
	SemiTransparencyLevel  float64 `json:"semiTransparencyLevel,omitempty" form:"semiTransparencyLevel"`
	PixelDensity           string  `json:"pixelDensity,omitempty" form:"pixelDensity"`

	// Project context, carried through to the summary and generated documents.
	ClientName      string `json:"clientName,omitempty" form:"clientName"`
	ClientEmail     string `json:"clientEmail,omitempty" form:"clientEmail"`
	ClientPhone     string `json:"clientPhone,omitempty" form:"clientPhone"`
	ClientAddress   string `json:"clientAddress,omitempty" form:"clientAddress"`
	ScreenPurpose   string `json:"screenPurpose,omitempty" form:"screenPurpose"`
	ViewingDistance string `json:"viewingDistance,omitempty" form:"viewingDistance"`
	SunExposure     string `json:"sunExposure,omitempty" form:"sunExposure"`
}

// PanelSize is a parsed "<w>x<h>" tile size in millimeters.
type PanelSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimensions is the realized screen size after rounding up to whole panels.
type Dimensions struct {
	WidthM       float64 `json:"widthM"`
	HeightM      float64 `json:"heightM"`
	ActualWidth  string  `json:"actualWidth" example:"4.00"`
	ActualHeight string  `json:"actualHeight" example:"2.50"`
}

type Panels struct {
	Wide          int    `json:"wide"`
	High          int    `json:"high"`
	PerScreen     int    `json:"perScreen"`
	Total         int    `json:"total"`
	Configuration string `json:"configuration" example:"8×5 par écran"`
}

type Resolution struct {
	PerPanelWidth  int   `json:"perPanelWidth"`
	PerPanelHeight int   `json:"perPanelHeight"`
	PerPanel       int   `json:"perPanel"`
	PerScreen      int64 `json:"perScreen"`
	Total          int64 `json:"total"`
}

type Processor struct {
	Screen              int    `json:"screen"`
	Model               string `json:"model"`
	PortsUsed           int    `json:"portsUsed"`
	CapacityUtilization string `json:"capacityUtilization"`
}

type Hardware struct {
	Processors    []Processor `json:"processors"`
	Bumpers       int         `json:"bumpers"`
	Cables        int         `json:"cables"`
	PowerSupplies int         `json:"powerSupplies"`
}

// LineItem is one row of the pricing table. Amounts are whole euros.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Total       int64  `json:"total"`
}

type Pricing struct {
	Items      []LineItem `json:"items"`
	TotalPrice int64      `json:"totalPrice" example:"12197"`

	// Unrounded panel price after surcharge and screen type multiplier.
	PanelUnitPrice decimal.Decimal `json:"panelUnitPrice" swaggertype:"string"`
}

// QuoteResult is derived entirely from a Configuration.
type QuoteResult struct {
	Reference         string     `json:"reference,omitempty"`
	GeneratedAt       *time.Time `json:"generatedAt,omitempty"`
	Dimensions        Dimensions `json:"dimensions"`
	Panels            Panels     `json:"panels"`
	Resolution        Resolution `json:"resolution"`
	Hardware          Hardware   `json:"hardware"`
	SpecialScreenInfo string     `json:"specialScreenInfo,omitempty"`
	Pricing           Pricing    `json:"pricing"`
}

// QuoteResponse pairs the submitted configuration with its computed quote.
type QuoteResponse struct {
	Configuration Configuration `json:"configuration"`
	Summary       string        `json:"summary"`
	Quote         QuoteResult   `json:"quote"`
}

// EmailQuoteRequest is the body of POST /api/quote/email.
type EmailQuoteRequest struct {
	To            string        `json:"to" binding:"required,email"`
	Cc            []string      `json:"cc,omitempty" binding:"omitempty,dive,email"`
	Configuration Configuration `json:"configuration"`
}

// Recommendation is returned by GET /api/recommendations.
type Recommendation struct {
	Pitch      float64 `json:"pitch,omitempty"`
	Brightness int     `json:"brightness,omitempty"`
}
