package players

// MaxRows caps how many player rows a single read maps.
const MaxRows = 999999

// Column headers of the player sheet.
const (
	ColName        = "Name"
	ColPhone       = "Phone"
	ColAge         = "Age"
	ColTargetPairs = "Target Pairs"
	ColAttempt1    = "1st Attempt"
	ColAttempt2    = "2nd Attempt"
	ColAttempt3    = "3rd Attempt"
	ColAttempts    = "Attempts"
	ColResult      = "Result"
	ColTimestamp   = "Timestamp"
)

// Header is the column layout the game client writes.
var Header = []string{
	ColName, ColPhone, ColAge, ColTargetPairs, ColAttempt1, ColAttempt2, ColAttempt3, ColAttempts, ColResult, ColTimestamp,
}

// ResultWin marks a won session.
const ResultWin = "Win"

// PlayerRecord is one game session as written by the game client.
type PlayerRecord struct {
	Name        string `json:"Name"`
	Phone       string `json:"Phone"`
	Age         int    `json:"Age"`
	TargetPairs string `json:"Target Pairs"`
	Attempt1    string `json:"1st Attempt"`
	Attempt2    string `json:"2nd Attempt"`
	Attempt3    string `json:"3rd Attempt"`
	Attempts    int    `json:"Attempts"`
	Result      string `json:"Result"`
	Timestamp   string `json:"Timestamp"`
}

// Page is one slice of the player records.
type Page struct {
	Data       []PlayerRecord `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// DashboardStats summarises all recorded sessions.
type DashboardStats struct {
	TotalPlayers    int         `json:"totalPlayers"`
	WinRate         float64     `json:"winRate"`
	AverageAttempts float64     `json:"averageAttempts"`
	PlayersByDate   []DateCount `json:"playersByDate"`
	PlayersByHour   []HourCount `json:"playersByHour"`
}

// DateHours is the hour-of-day histogram for one calendar date.
type DateHours struct {
	Date  string      `json:"date"`
	Hours []HourCount `json:"hours"`
}

// HourlyByDate holds one DateHours entry per date, ordered like Dates.
type HourlyByDate struct {
	Dates      []string    `json:"dates"`
	HourlyData []DateHours `json:"hourlyData"`
}
