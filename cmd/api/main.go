package main

// @title Ideation Lab Session APIs
// @version 1.0
// @description Shareable flashcards and quiz sessions for the classroom.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "github.com/GityImran/ideation-lab/docs"
	protocol "github.com/GityImran/ideation-lab/protocal"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
