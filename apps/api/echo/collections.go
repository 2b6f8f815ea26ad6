package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

var errInvalidID = echo.NewHTTPError(http.StatusBadRequest, "invalid id")

type collectionAPI struct {
	store portal.Store
}

func registerCollectionAPI(g *echo.Group, store portal.Store) {
	api := collectionAPI{store: store}

	g.GET("/projects", api.listProjects)
	g.POST("/projects", api.createProject)
	g.PUT("/projects/:id", api.updateProject)
	g.DELETE("/projects/:id", api.deleteProject)

	g.GET("/submissions", api.listSubmissions)
	g.POST("/submissions", api.createSubmission)
	g.PUT("/submissions/:id", api.updateSubmission)
	g.DELETE("/submissions/:id", api.deleteSubmission)

	g.GET("/tasks", api.listTasks)
	g.POST("/tasks", api.createTask)
	g.PUT("/tasks/:id", api.updateTask)

	g.GET("/messages", api.listMessages)
	g.POST("/messages", api.createMessage)
}

func recordID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// Projects

func (api *collectionAPI) listProjects(ctx echo.Context) error {
	projects, err := api.store.Projects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing projects")
	}
	if projects == nil {
		projects = []portal.Project{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "projects": projects})
}

func (api *collectionAPI) createProject(ctx echo.Context) error {
	var data portal.Project
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Project")
	}
	prj, err := api.store.CreateProject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "project": prj})
}

func (api *collectionAPI) updateProject(ctx echo.Context) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	var patch portal.Patch
	if err = ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to Patch")
	}
	prj, err := api.store.UpdateProject(ctx.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "project": prj})
}

func (api *collectionAPI) deleteProject(ctx echo.Context) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	if err = api.store.DeleteProject(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

// Submissions

func (api *collectionAPI) listSubmissions(ctx echo.Context) error {
	submissions, err := api.store.Submissions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing submissions")
	}
	if submissions == nil {
		submissions = []portal.Submission{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "submissions": submissions})
}

func (api *collectionAPI) createSubmission(ctx echo.Context) error {
	var data portal.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	sub, err := api.store.CreateSubmission(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "submission": sub})
}

func (api *collectionAPI) updateSubmission(ctx echo.Context) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	var patch portal.Patch
	if err = ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to Patch")
	}
	sub, err := api.store.UpdateSubmission(ctx.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "submission": sub})
}

func (api *collectionAPI) deleteSubmission(ctx echo.Context) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	if err = api.store.DeleteSubmission(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting submission")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

// Tasks

func (api *collectionAPI) listTasks(ctx echo.Context) error {
	tasks, err := api.store.Tasks(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing tasks")
	}
	if tasks == nil {
		tasks = []portal.Task{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "tasks": tasks})
}

func (api *collectionAPI) createTask(ctx echo.Context) error {
	var data portal.Task
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Task")
	}
	tsk, err := api.store.CreateTask(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "task": tsk})
}

func (api *collectionAPI) updateTask(ctx echo.Context) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	var patch portal.Patch
	if err = ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to Patch")
	}
	tsk, err := api.store.UpdateTask(ctx.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "task": tsk})
}

// Messages

func (api *collectionAPI) listMessages(ctx echo.Context) error {
	messages, err := api.store.Messages(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing messages")
	}
	if messages == nil {
		messages = []portal.Message{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "messages": messages})
}

func (api *collectionAPI) createMessage(ctx echo.Context) error {
	var data portal.Message
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Message")
	}
	msg, err := api.store.CreateMessage(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating message")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": msg})
}
