package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pitchday/metrics"
	"pitchday/scoring"
	"pitchday/service"
	"pitchday/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type RankingController struct {
	rankingService *service.RankingService
	mu             sync.Mutex
	rankingConns   map[*websocket.Conn]bool
	winnersConns   map[*websocket.Conn]bool
}

func NewRankingController(db *gorm.DB) *RankingController {
	return &RankingController{
		rankingService: service.NewRankingService(db),
		rankingConns:   make(map[*websocket.Conn]bool),
		winnersConns:   make(map[*websocket.Conn]bool),
	}
}

func (e *RankingController) routes(cacheStore *persistence.InMemoryStore) []RouteInfo {
	return []RouteInfo{
		{Method: "GET", Path: "ranking", HandlerFunc: cache.CachePage(cacheStore, 10*time.Second, e.getRankingHandler())},
		{Method: "GET", Path: "admin/ranking", HandlerFunc: e.getRankingHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/announce-winner", HandlerFunc: e.announceWinnerHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "ws/ranking", HandlerFunc: e.rankingWebSocketHandler},
		{Method: "GET", Path: "ws/winners", HandlerFunc: e.winnersWebSocketHandler},
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

// @id GetRanking
// @Description Fetches the competition ranking. Teams without evaluations are excluded. The optional judge_id restricts the ranking to one judge's scores. The criterion parameter is accepted for forward compatibility but does not change the result.
// @Tags ranking
// @Produce json
// @Router /ranking [get]
// @Param judge_id query int false "Judge Id"
// @Param criterion query string false "Criterion key"
// @Success 200 {object} RankingResponse
func (e *RankingController) getRankingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId := 0
		if query := c.Query("judge_id"); query != "" {
			var err error
			judgeId, err = strconv.Atoi(query)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		ranking, err := e.rankingService.GetRanking(judgeId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, RankingResponse{Ranking: ranking})
	}
}

// @id AnnounceWinner
// @Description Broadcasts a winners ceremony step to every connected winners client. Places 1 to 3 address the podium; place 0 resets the display.
// @Tags ranking
// @Accept json
// @Produce json
// @Router /admin/announce-winner [post]
// @Param body body WinnerAnnouncement true "Announcement"
// @Success 200 {object} WinnerAnnouncement
func (e *RankingController) announceWinnerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var announcement WinnerAnnouncement
		if err := c.BindJSON(&announcement); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if announcement.Place < 0 || announcement.Place > 3 {
			c.JSON(400, gin.H{"error": "place must be between 0 and 3"})
			return
		}
		if !utils.Contains([]string{"start_animation", "reveal", "reset"}, announcement.Action) {
			c.JSON(400, gin.H{"error": "action must be start_animation, reveal or reset"})
			return
		}
		e.broadcast(e.winnersConns, "winners", WinnersMessage{
			Type:         "winner_announcement",
			Announcement: &announcement,
		})
		c.JSON(200, announcement)
	}
}

// @id RankingWebSocket
// @Description Websocket for live ranking updates. The full current ranking is sent on connect, then again after every score submission.
// @Tags ranking
// @Router /ws/ranking [get]
// @Success 200 {object} RankingMessage
func (e *RankingController) rankingWebSocketHandler(c *gin.Context) {
	ranking, err := e.rankingService.GetRanking(0)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	// Send the current ranking to the new subscriber
	serialized, err := json.Marshal(RankingMessage{Type: "initial_ranking", Ranking: ranking})
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
		return
	}

	e.subscribe(e.rankingConns, "ranking", conn)
	e.readUntilClosed(e.rankingConns, "ranking", conn)
}

// @id WinnersWebSocket
// @Description Websocket for the winners ceremony. Clients receive each announcement step as the administrator triggers it.
// @Tags ranking
// @Router /ws/winners [get]
// @Success 200 {object} WinnersMessage
func (e *RankingController) winnersWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	serialized, err := json.Marshal(WinnersMessage{Type: "connected"})
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
		return
	}

	e.subscribe(e.winnersConns, "winners", conn)
	e.readUntilClosed(e.winnersConns, "winners", conn)
}

// RankingChanged recomputes the ranking and pushes it to every ranking
// subscriber. It runs detached so a slow client never delays the
// submission that triggered it.
func (e *RankingController) RankingChanged(judgeId int, teamNum string, total float64) {
	go func() {
		ranking, err := e.rankingService.GetRanking(0)
		if err != nil {
			log.Printf("ranking update after submission for team %s failed: %v", teamNum, err)
			metrics.NotificationFailureCounter.Inc()
			return
		}
		e.broadcast(e.rankingConns, "ranking", RankingMessage{
			Type:    "ranking_update",
			Ranking: ranking,
			TeamNum: teamNum,
			JudgeId: judgeId,
			Total:   total,
		})
	}()
}

func (e *RankingController) subscribe(conns map[*websocket.Conn]bool, channel string, conn *websocket.Conn) {
	e.mu.Lock()
	conns[conn] = true
	e.mu.Unlock()
	metrics.WebsocketClientsGauge.WithLabelValues(channel).Inc()
}

func (e *RankingController) readUntilClosed(conns map[*websocket.Conn]bool, channel string, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			e.mu.Lock()
			if conns[conn] {
				delete(conns, conn)
				metrics.WebsocketClientsGauge.WithLabelValues(channel).Dec()
			}
			e.mu.Unlock()
			return
		}
	}
}

func (e *RankingController) broadcast(conns map[*websocket.Conn]bool, channel string, message any) {
	serialized, err := json.Marshal(message)
	if err != nil {
		log.Printf("failed to serialize %s message: %v", channel, err)
		metrics.NotificationFailureCounter.Inc()
		return
	}
	e.mu.Lock()
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
			conn.Close()
			delete(conns, conn)
			metrics.WebsocketClientsGauge.WithLabelValues(channel).Dec()
			metrics.NotificationFailureCounter.Inc()
		}
	}
	e.mu.Unlock()
}

type RankingResponse struct {
	Ranking []*scoring.TeamRanking `json:"ranking"`
}

type RankingMessage struct {
	Type    string                 `json:"type"`
	Ranking []*scoring.TeamRanking `json:"ranking"`
	TeamNum string                 `json:"team_id,omitempty"`
	JudgeId int                    `json:"judge_id,omitempty"`
	Total   float64                `json:"total,omitempty"`
}

type WinnerAnnouncement struct {
	Place  int    `json:"place"`
	Action string `json:"action" binding:"required"`
}

type WinnersMessage struct {
	Type         string              `json:"type"`
	Announcement *WinnerAnnouncement `json:"announcement,omitempty"`
}
