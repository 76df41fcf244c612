package routes

import (
	"wagerhub/controllers"

	"github.com/gin-gonic/gin"
)

func CreateChallengeRouteHandler(ctx *gin.Context) {
	controllers.CreateChallenge(ctx)
}

func MyChallengesRouteHandler(ctx *gin.Context) {
	controllers.MyChallenges(ctx)
}

func ChallengesForMeRouteHandler(ctx *gin.Context) {
	controllers.ChallengesForMe(ctx)
}

func PublicChallengesRouteHandler(ctx *gin.Context) {
	controllers.PublicChallenges(ctx)
}

func GetChallengeRouteHandler(ctx *gin.Context) {
	controllers.GetChallenge(ctx)
}

func AcceptChallengeRouteHandler(ctx *gin.Context) {
	controllers.AcceptChallenge(ctx)
}

func DeclineChallengeRouteHandler(ctx *gin.Context) {
	controllers.DeclineChallenge(ctx)
}

func JoinChallengeRouteHandler(ctx *gin.Context) {
	controllers.JoinChallenge(ctx)
}

func CancelChallengeRouteHandler(ctx *gin.Context) {
	controllers.CancelChallenge(ctx)
}

func DeleteChallengeRouteHandler(ctx *gin.Context) {
	controllers.DeleteChallenge(ctx)
}

func MarkReadyRouteHandler(ctx *gin.Context) {
	controllers.MarkReady(ctx)
}

func SubmitScorecardRouteHandler(ctx *gin.Context) {
	controllers.SubmitScorecard(ctx)
}

func UploadProofRouteHandler(ctx *gin.Context) {
	controllers.UploadProof(ctx)
}

func ClaimRewardRouteHandler(ctx *gin.Context) {
	controllers.ClaimReward(ctx)
}

func FileDisputeRouteHandler(ctx *gin.Context) {
	controllers.FileDispute(ctx)
}
