package main

import (
	"context"

	employeehandler "github.com/staffdesk/employee-api/internal/handlers/employee"
	employeesvc "github.com/staffdesk/employee-api/internal/services/employee"
	"github.com/staffdesk/employee-api/internal/stores"
	employeestore "github.com/staffdesk/employee-api/internal/stores/employee"
	"github.com/staffdesk/employee-api/pkg/config"
	"github.com/staffdesk/employee-api/pkg/container"
	"github.com/staffdesk/employee-api/pkg/logging"
	"github.com/staffdesk/employee-api/pkg/server"
)

func main() {
	logger := logging.NewLogger(logging.INFO)

	conf := config.NewEnvFile("./configs", logger)

	c, err := container.NewContainer(conf)
	if err != nil {
		logger.Fatalf("could not create container: %v", err)
	}

	app := server.New(conf, c)

	if err = c.Connect(context.Background()); err != nil {
		c.Fatalf("could not connect to the %s store: %v", c.Backend(), err)
	}

	employeehandler.New(employeesvc.New(newStore(c))).Register(app)

	if err = app.Run(); err != nil {
		c.Fatalf("server stopped with error: %v", err)
	}
}

func newStore(c *container.Container) stores.Employee {
	if c.Backend() == container.BackendBadger {
		return employeestore.NewBadger(c.Badger)
	}

	return employeestore.NewMongo(c.Mongo)
}
